package nlquery

// Coleções da origem de dados consultáveis em linguagem natural
const (
	CollectionUsers         = "users"
	CollectionChats         = "chats"
	CollectionConversations = "conversations"
	CollectionUnfoundDrugs  = "unfound_drugs"
)

// collectionFields lista os campos conhecidos de cada coleção.
// Planos que referenciam campos fora desta lista são rejeitados.
var collectionFields = map[string]map[string]bool{
	CollectionUsers: {
		"user_id":            true,
		"display_name":       true,
		"first_name":         true,
		"last_name":          true,
		"age":                true,
		"gender":             true,
		"contact":            true,
		"contact_type":       true,
		"email_verified":     true,
		"oauth_provider":     true,
		"is_active":          true,
		"login_count":        true,
		"profile_complete":   true,
		"preferred_language": true,
		"created_at":         true,
		"last_login":         true,
	},
	CollectionChats: {
		"chat_id":       true,
		"user_id":       true,
		"title":         true,
		"message_count": true,
		"created_at":    true,
		"last_updated":  true,
	},
	CollectionConversations: {
		"conversation_id":    true,
		"chat_id":            true,
		"user_id":            true,
		"user_message":       true,
		"bot_response":       true,
		"bot_response_tamil": true,
		"image_url":          true,
		"timestamp":          true,
	},
	CollectionUnfoundDrugs: {
		"tablet_name":      true,
		"combination_name": true,
		"frequency":        true,
		"first_searched":   true,
		"last_searched":    true,
		"chat_names":       true,
	},
}

// dbStructure descreve o esquema da origem para o prompt do modelo
const dbStructure = `Database structure:

Collection: users
  user_id (string), display_name (string), first_name (string), last_name (string),
  age (number, may be absent), gender (string), contact (string), contact_type (string),
  email_verified (boolean), oauth_provider (string), is_active (boolean),
  login_count (number), profile_complete (boolean), preferred_language (string),
  created_at (datetime), last_login (datetime, may be absent)

Collection: chats
  chat_id (string), user_id (string), title (string), message_count (number),
  created_at (datetime), last_updated (datetime)

Collection: conversations
  conversation_id (string), chat_id (string), user_id (string), user_message (string),
  bot_response (string), bot_response_tamil (string), image_url (string),
  timestamp (datetime)

Collection: unfound_drugs
  tablet_name (string), combination_name (string), frequency (number),
  first_searched (datetime), last_searched (datetime), chat_names (array of strings)

Datetime values are formatted as "YYYY-MM-DD HH:MM:SS" in UTC.`
