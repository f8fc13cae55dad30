package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Nomes das coleções no Firestore do chatbot
const (
	usersCollection         = "users"
	chatsCollection         = "chats"
	conversationsCollection = "conversations"
	unfoundDrugsCollection  = "unfound_drugs"
)

// FirestoreSource implementa a interface analytics.Source sobre o Firestore do chatbot.
// As coleções chats e conversations são subcoleções, por isso as leituras usam
// consultas de grupo de coleção; o usuário dono de cada conversa é resolvido a partir
// do documento de chat pai, com cache para evitar leituras repetidas.
type FirestoreSource struct {
	client *firestore.Client
	logger logger.Logger

	mu        sync.Mutex
	chatUsers map[string]string // chat path -> user_id
}

// NewFirestoreSource cria uma nova instância de FirestoreSource
func NewFirestoreSource(client *firestore.Client, logger logger.Logger) analytics.Source {
	return &FirestoreSource{
		client:    client,
		logger:    logger,
		chatUsers: make(map[string]string),
	}
}

// userDoc espelha o documento de usuário no Firestore
type userDoc struct {
	UserID            string     `firestore:"user_id"`
	DisplayName       string     `firestore:"display_name"`
	FirstName         string     `firestore:"first_name"`
	LastName          string     `firestore:"last_name"`
	Age               *int       `firestore:"age"`
	Gender            string     `firestore:"gender"`
	Contact           string     `firestore:"contact"`
	ContactType       string     `firestore:"contact_type"`
	EmailVerified     bool       `firestore:"email_verified"`
	OAuthProvider     string     `firestore:"oauth_provider"`
	PhotoURL          string     `firestore:"photo_url"`
	IsActive          bool       `firestore:"is_active"`
	LoginCount        int        `firestore:"login_count"`
	ProfileComplete   bool       `firestore:"profile_complete"`
	PreferredLanguage string     `firestore:"preferred_language"`
	CreatedAt         *time.Time `firestore:"created_at"`
	LastLogin         *time.Time `firestore:"last_login"`
}

func (d *userDoc) toEntity() analytics.AppUser {
	return analytics.AppUser{
		UserID:            d.UserID,
		DisplayName:       d.DisplayName,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Age:               d.Age,
		Gender:            d.Gender,
		Contact:           d.Contact,
		ContactType:       d.ContactType,
		EmailVerified:     d.EmailVerified,
		OAuthProvider:     d.OAuthProvider,
		PhotoURL:          d.PhotoURL,
		IsActive:          d.IsActive,
		LoginCount:        d.LoginCount,
		ProfileComplete:   d.ProfileComplete,
		PreferredLanguage: d.PreferredLanguage,
		CreatedAt:         analytics.EnsureUTC(d.CreatedAt),
		LastLogin:         analytics.EnsureUTC(d.LastLogin),
	}
}

// chatDoc espelha o documento de chat no Firestore
type chatDoc struct {
	ChatID       string     `firestore:"chat_id"`
	UserID       string     `firestore:"user_id"`
	Title        string     `firestore:"title"`
	MessageCount int        `firestore:"message_count"`
	CreatedAt    *time.Time `firestore:"created_at"`
	LastUpdated  *time.Time `firestore:"last_updated"`
}

// conversationDoc espelha o documento de conversa no Firestore
type conversationDoc struct {
	ConversationID   string     `firestore:"conversation_id"`
	UserMessage      string     `firestore:"user_message"`
	BotResponse      string     `firestore:"bot_response"`
	BotResponseTamil string     `firestore:"bot_response_tamil"`
	ImageURL         string     `firestore:"image_url"`
	Timestamp        *time.Time `firestore:"timestamp"`
}

// unfoundDrugDoc espelha o documento de medicamento não encontrado no Firestore
type unfoundDrugDoc struct {
	TabletName      string     `firestore:"tablet_name"`
	CombinationName string     `firestore:"combination_name"`
	Frequency       int        `firestore:"frequency"`
	FirstSearched   *time.Time `firestore:"first_searched"`
	LastSearched    *time.Time `firestore:"last_searched"`
	ChatNames       []string   `firestore:"chat_names"`
}

// Users implementa analytics.Source.Users
func (s *FirestoreSource) Users(ctx context.Context) ([]analytics.AppUser, error) {
	return s.readUsers(ctx, s.client.Collection(usersCollection).Documents(ctx))
}

// UsersActiveSince implementa analytics.Source.UsersActiveSince
func (s *FirestoreSource) UsersActiveSince(ctx context.Context, since time.Time) ([]analytics.AppUser, error) {
	it := s.client.Collection(usersCollection).
		Where("last_login", ">=", since).
		Documents(ctx)
	return s.readUsers(ctx, it)
}

func (s *FirestoreSource) readUsers(ctx context.Context, it *firestore.DocumentIterator) ([]analytics.AppUser, error) {
	defer it.Stop()

	var users []analytics.AppUser
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao ler usuários do Firestore: %w", err)
		}

		var d userDoc
		if err := doc.DataTo(&d); err != nil {
			// Documentos com campos fora do esquema são ignorados, não abortam a leitura
			s.logger.Warn("documento de usuário ignorado", "doc", doc.Ref.ID, "error", err)
			continue
		}
		users = append(users, d.toEntity())
	}

	return users, nil
}

// Chats implementa analytics.Source.Chats
func (s *FirestoreSource) Chats(ctx context.Context) ([]analytics.Chat, error) {
	it := s.client.CollectionGroup(chatsCollection).Documents(ctx)
	return s.readChats(it)
}

// ChatsByUser implementa analytics.Source.ChatsByUser
func (s *FirestoreSource) ChatsByUser(ctx context.Context, userID string) ([]analytics.Chat, error) {
	it := s.client.CollectionGroup(chatsCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	return s.readChats(it)
}

func (s *FirestoreSource) readChats(it *firestore.DocumentIterator) ([]analytics.Chat, error) {
	defer it.Stop()

	var chats []analytics.Chat
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao ler chats do Firestore: %w", err)
		}

		var d chatDoc
		if err := doc.DataTo(&d); err != nil {
			s.logger.Warn("documento de chat ignorado", "doc", doc.Ref.ID, "error", err)
			continue
		}
		chats = append(chats, analytics.Chat{
			ChatID:       d.ChatID,
			UserID:       d.UserID,
			Title:        d.Title,
			MessageCount: d.MessageCount,
			CreatedAt:    analytics.EnsureUTC(d.CreatedAt),
			LastUpdated:  analytics.EnsureUTC(d.LastUpdated),
		})
	}

	return chats, nil
}

// Conversations implementa analytics.Source.Conversations
func (s *FirestoreSource) Conversations(ctx context.Context) ([]analytics.Conversation, error) {
	it := s.client.CollectionGroup(conversationsCollection).Documents(ctx)
	return s.readConversations(ctx, it)
}

// ConversationsSince implementa analytics.Source.ConversationsSince
func (s *FirestoreSource) ConversationsSince(ctx context.Context, since time.Time) ([]analytics.Conversation, error) {
	it := s.client.CollectionGroup(conversationsCollection).
		Where("timestamp", ">=", since).
		Documents(ctx)
	return s.readConversations(ctx, it)
}

func (s *FirestoreSource) readConversations(ctx context.Context, it *firestore.DocumentIterator) ([]analytics.Conversation, error) {
	defer it.Stop()

	var conversations []analytics.Conversation
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao ler conversas do Firestore: %w", err)
		}

		var d conversationDoc
		if err := doc.DataTo(&d); err != nil {
			s.logger.Warn("documento de conversa ignorado", "doc", doc.Ref.ID, "error", err)
			continue
		}

		conv := analytics.Conversation{
			ConversationID:   d.ConversationID,
			UserMessage:      d.UserMessage,
			BotResponse:      d.BotResponse,
			BotResponseTamil: d.BotResponseTamil,
			ImageURL:         d.ImageURL,
			Timestamp:        analytics.EnsureUTC(d.Timestamp),
		}

		// Resolver o chat pai e o usuário dono a partir do caminho do documento
		if chatRef := parentChat(doc.Ref); chatRef != nil {
			conv.ChatID = chatRef.ID
			conv.UserID = s.resolveChatUser(ctx, chatRef)
		}

		conversations = append(conversations, conv)
	}

	return conversations, nil
}

// UnfoundDrugs implementa analytics.Source.UnfoundDrugs
func (s *FirestoreSource) UnfoundDrugs(ctx context.Context) ([]analytics.UnfoundDrug, error) {
	it := s.client.Collection(unfoundDrugsCollection).Documents(ctx)
	defer it.Stop()

	var drugs []analytics.UnfoundDrug
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao ler medicamentos não encontrados: %w", err)
		}

		var d unfoundDrugDoc
		if err := doc.DataTo(&d); err != nil {
			s.logger.Warn("documento de medicamento ignorado", "doc", doc.Ref.ID, "error", err)
			continue
		}
		drugs = append(drugs, analytics.UnfoundDrug{
			TabletName:      d.TabletName,
			CombinationName: d.CombinationName,
			Frequency:       d.Frequency,
			FirstSearched:   analytics.EnsureUTC(d.FirstSearched),
			LastSearched:    analytics.EnsureUTC(d.LastSearched),
			ChatNames:       d.ChatNames,
		})
	}

	return drugs, nil
}

// parentChat retorna a referência do documento de chat que contém a conversa
func parentChat(ref *firestore.DocumentRef) *firestore.DocumentRef {
	if ref == nil || ref.Parent == nil {
		return nil
	}
	return ref.Parent.Parent
}

// resolveChatUser busca o user_id do chat pai, com cache por caminho do documento
func (s *FirestoreSource) resolveChatUser(ctx context.Context, chatRef *firestore.DocumentRef) string {
	s.mu.Lock()
	if userID, ok := s.chatUsers[chatRef.Path]; ok {
		s.mu.Unlock()
		return userID
	}
	s.mu.Unlock()

	doc, err := chatRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			s.logger.Debug("chat pai da conversa não existe mais", "chat", chatRef.ID)
		} else {
			s.logger.Warn("falha ao resolver chat pai da conversa", "chat", chatRef.ID, "error", err)
		}
		return ""
	}

	var d chatDoc
	if err := doc.DataTo(&d); err != nil {
		return ""
	}

	s.mu.Lock()
	s.chatUsers[chatRef.Path] = d.UserID
	s.mu.Unlock()

	return d.UserID
}
