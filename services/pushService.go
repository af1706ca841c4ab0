package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/config"
)

// FCMService sends admin pushes through Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
}

// NewFCMService builds the messaging client from the three FIREBASE_* env
// values. The private key arrives with literal "\n" sequences from most
// dashboards, so they are unescaped here.
func NewFCMService(ctx context.Context, cfg config.Config) (*FCMService, error) {
	if cfg.FirebaseProjectID == "" || cfg.FirebaseClientEmail == "" || cfg.FirebasePrivateKey == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID, FIREBASE_CLIENT_EMAIL and FIREBASE_PRIVATE_KEY must be set")
	}

	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.FirebaseProjectID,
		"client_email": cfg.FirebaseClientEmail,
		"private_key":  strings.ReplaceAll(cfg.FirebasePrivateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging init failed: %w", err)
	}

	return &FCMService{client: client}, nil
}

// Notify sends one message to one token. No retry, no delivery tracking.
func (fs *FCMService) Notify(ctx context.Context, token, title, body string, data map[string]string) error {
	_, err := fs.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	return err
}
