package analytics

import (
	"context"
	"time"
)

// Source define a interface de leitura sobre o banco de documentos do chatbot.
// Todas as operações são somente leitura; o dashboard nunca escreve na origem.
type Source interface {
	// Users retorna todos os usuários do chatbot
	Users(ctx context.Context) ([]AppUser, error)

	// UsersActiveSince retorna os usuários com last_login a partir do instante informado
	UsersActiveSince(ctx context.Context, since time.Time) ([]AppUser, error)

	// Chats retorna todas as sessões de chat
	Chats(ctx context.Context) ([]Chat, error)

	// ChatsByUser retorna as sessões de chat de um usuário
	ChatsByUser(ctx context.Context, userID string) ([]Chat, error)

	// Conversations retorna todas as conversas, com UserID resolvido a partir do chat pai
	Conversations(ctx context.Context) ([]Conversation, error)

	// ConversationsSince retorna as conversas com timestamp a partir do instante informado
	ConversationsSince(ctx context.Context, since time.Time) ([]Conversation, error)

	// UnfoundDrugs retorna os medicamentos pesquisados e não encontrados
	UnfoundDrugs(ctx context.Context) ([]UnfoundDrug, error)
}
