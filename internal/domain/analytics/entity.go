package analytics

import (
	"time"
)

// AppUser representa um usuário do chatbot médico armazenado no Firestore
type AppUser struct {
	UserID            string     `json:"user_id"`
	DisplayName       string     `json:"display_name"`
	FirstName         string     `json:"first_name,omitempty"`
	LastName          string     `json:"last_name,omitempty"`
	Age               *int       `json:"age,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	Contact           string     `json:"contact,omitempty"`
	ContactType       string     `json:"contact_type,omitempty"`
	EmailVerified     bool       `json:"email_verified"`
	OAuthProvider     string     `json:"oauth_provider,omitempty"`
	PhotoURL          string     `json:"photo_url,omitempty"`
	IsActive          bool       `json:"is_active"`
	LoginCount        int        `json:"login_count"`
	ProfileComplete   bool       `json:"profile_complete"`
	PreferredLanguage string     `json:"preferred_language,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

// Chat representa uma sessão de conversa de um usuário do chatbot
type Chat struct {
	ChatID       string     `json:"chat_id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title,omitempty"`
	MessageCount int        `json:"message_count"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

// Conversation representa uma troca de mensagens (pergunta do usuário + resposta do bot)
// dentro de uma sessão de chat. UserID é resolvido pelo adaptador a partir do chat pai.
type Conversation struct {
	ConversationID   string     `json:"conversation_id"`
	ChatID           string     `json:"chat_id,omitempty"`
	UserID           string     `json:"user_id,omitempty"`
	UserMessage      string     `json:"user_message"`
	BotResponse      string     `json:"bot_response"`
	BotResponseTamil string     `json:"bot_response_tamil,omitempty"`
	ImageURL         string     `json:"image_url,omitempty"`
	Timestamp        *time.Time `json:"timestamp,omitempty"`
}

// UnfoundDrug representa um medicamento pesquisado que não foi encontrado na base
type UnfoundDrug struct {
	TabletName      string     `json:"tablet_name"`
	CombinationName string     `json:"combination_name,omitempty"`
	Frequency       int        `json:"frequency"`
	FirstSearched   *time.Time `json:"first_searched,omitempty"`
	LastSearched    *time.Time `json:"last_searched,omitempty"`
	ChatNames       []string   `json:"chat_names,omitempty"`
}

// EnsureUTC normaliza um timestamp para UTC; timestamps sem fuso são assumidos como UTC
func EnsureUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
