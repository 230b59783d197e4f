package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message é a visão do pipeline sobre um update do Telegram. Só os campos
// que o pipeline consome; o resto do update fica no transporte.
type Message struct {
	ChatID       int64
	MessageID    int
	Text         string
	Caption      string
	HasPhoto     bool
	PhotoFileID  string // maior resolução disponível
	ReplyToID    int    // 0 quando não é resposta
	Edited       bool
	ForwardTitle string // canal/usuário de origem quando encaminhada
}

// FromUpdate converte um update em Message. Retorna ok=false para updates
// sem mensagem (callback, inline query etc).
func FromUpdate(u tgbotapi.Update) (Message, bool) {
	raw := u.Message
	edited := false
	if raw == nil {
		raw = u.EditedMessage
		edited = true
	}
	if raw == nil {
		return Message{}, false
	}

	m := Message{
		ChatID:    raw.Chat.ID,
		MessageID: raw.MessageID,
		Text:      raw.Text,
		Caption:   raw.Caption,
		Edited:    edited,
	}
	if len(raw.Photo) > 0 {
		m.HasPhoto = true
		m.PhotoFileID = bestPhoto(raw.Photo).FileID
	}
	if raw.ReplyToMessage != nil {
		m.ReplyToID = raw.ReplyToMessage.MessageID
	}
	if raw.ForwardFromChat != nil {
		m.ForwardTitle = raw.ForwardFromChat.Title
	} else if raw.ForwardFrom != nil {
		m.ForwardTitle = raw.ForwardFrom.UserName
	}
	return m, true
}

// bestPhoto escolhe o tamanho de maior área entre os disponíveis.
func bestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

// Content devolve o texto relevante: legenda quando há foto, senão o texto.
func (m Message) Content() string {
	if m.Caption != "" {
		return m.Caption
	}
	return m.Text
}

// ChatKey é o chat id como string, chave usada em banco e planilha.
func (m Message) ChatKey() string {
	return strconv.FormatInt(m.ChatID, 10)
}

// IsCommand informa se a mensagem é um comando do bot (/dia, /ajuda...).
func (m Message) IsCommand() bool {
	return strings.HasPrefix(strings.TrimSpace(m.Text), "/")
}
