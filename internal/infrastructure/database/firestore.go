package database

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewFirestoreClient cria o cliente do Firestore para o banco de documentos do chatbot.
// O projeto vem de FIRESTORE_PROJECT_ID; a credencial de conta de serviço vem de
// GOOGLE_APPLICATION_CREDENTIALS ou de FIRESTORE_CREDENTIALS_FILE quando definida.
func NewFirestoreClient(ctx context.Context) (*firestore.Client, error) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID não encontrada nas variáveis de ambiente")
	}

	var opts []option.ClientOption
	if credFile := os.Getenv("FIRESTORE_CREDENTIALS_FILE"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Firestore: %w", err)
	}

	return client, nil
}
