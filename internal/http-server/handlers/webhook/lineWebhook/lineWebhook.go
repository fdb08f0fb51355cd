package lineWebhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"tablebooker/internal/chat/line"
	"tablebooker/internal/lib/logger/sl"
	"tablebooker/internal/models"
	"tablebooker/internal/storage"
)

// keywords the manual lookup understands; anything else gets the fallback.
var keywords = []string{
	"ビアポン", "ダーツ", "料金", "延長", "会計",
	"泥酔", "トラブル", "ルール", "予約",
}

const fallbackReply = "該当するマニュアルが見つかりませんでした。店長に確認してください🙏"

type webhookRequest struct {
	Events []event `json:"events"`
}

type event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Message    message `json:"message"`
}

type message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ManualFinder
type ManualFinder interface {
	FindManualAnswer(keyword string) (*models.ManualItem, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Replier
type Replier interface {
	Reply(replyToken, text string) error
}

func New(log *slog.Logger, channelSecret string, store ManualFinder, replier Replier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.webhook.lineWebhook.New"

		log = log.With(slog.String("op", op))

		signature := r.Header.Get("x-line-signature")
		if signature == "" {
			log.Error("missing line signature")
			http.Error(w, "Missing signature", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("failed to read request body", sl.Err(err))
			http.Error(w, "Error", http.StatusInternalServerError)
			return
		}

		if !line.ValidateSignature(channelSecret, body, signature) {
			log.Error("invalid line signature")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		var req webhookRequest
		if err = json.Unmarshal(body, &req); err != nil {
			log.Error("failed to decode webhook body", sl.Err(err))
			http.Error(w, "Error", http.StatusBadRequest)
			return
		}

		for _, ev := range req.Events {
			if ev.Type != "message" || ev.Message.Type != "text" {
				continue
			}

			reply := lookupReply(log, store, strings.TrimSpace(ev.Message.Text))

			// Replies are best effort; a failed reply must not fail the
			// webhook delivery.
			if err = replier.Reply(ev.ReplyToken, reply); err != nil {
				log.Error("failed to send line reply", sl.Err(err))
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func lookupReply(log *slog.Logger, store ManualFinder, text string) string {
	var matched string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = kw
			break
		}
	}

	if matched == "" {
		return fallbackReply
	}

	item, err := store.FindManualAnswer(matched)
	if err != nil {
		if !errors.Is(err, storage.ErrManualNotFound) {
			log.Error("failed to look up manual answer", sl.Err(err))
		}
		return fallbackReply
	}

	category := item.Category
	if category == "" {
		category = "マニュアル"
	}

	return "【" + category + "】\n" + item.Answer
}
