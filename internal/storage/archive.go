package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"pos-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// InvoiceArchive uploads generated invoice PDFs to S3-compatible storage
// (S3 or R2) so printed documents survive the till machine. Uploads are
// best-effort; a dead bucket never fails a sale.
type InvoiceArchive struct {
	client *s3.Client
	bucket string
}

// NewInvoiceArchive returns nil when archiving is not configured
func NewInvoiceArchive(cfg *config.Config) *InvoiceArchive {
	if !cfg.Archive.Enabled || cfg.Archive.Bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	region := cfg.Archive.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		log.Printf("[Archive] client configuration failed: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})

	return &InvoiceArchive{
		client: client,
		bucket: cfg.Archive.Bucket,
	}
}

// StoreInvoice uploads an invoice PDF keyed by date and invoice id
func (a *InvoiceArchive) StoreInvoice(ctx context.Context, invoiceID string, createdAt time.Time, pdf []byte) error {
	key := fmt.Sprintf("invoices/%s/%s.pdf", createdAt.Format("2006-01-02"), invoiceID)
	return a.put(ctx, key, pdf)
}

// StoreStatement uploads a customer statement PDF
func (a *InvoiceArchive) StoreStatement(ctx context.Context, customerID int, generatedAt time.Time, pdf []byte) error {
	key := fmt.Sprintf("statements/%s/customer-%d.pdf", generatedAt.Format("2006-01-02"), customerID)
	return a.put(ctx, key, pdf)
}

func (a *InvoiceArchive) put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
