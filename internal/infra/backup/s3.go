package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

const keyPrefix = "snapshots"

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Snapshot é o conteúdo gravado no bucket.
type Snapshot struct {
	ExportedAt time.Time        `json:"exported_at"`
	ExportedBy string           `json:"exported_by,omitempty"`
	Clients    []domain.Client  `json:"clients"`
	Sessions   []domain.Session `json:"sessions"`
}

type Result struct {
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
	Clients  int    `json:"clients"`
	Sessions int    `json:"sessions"`
	Bytes    int    `json:"bytes"`
}

type Exporter struct {
	client objectPutter
	bucket string
	now    func() time.Time
	log    *applog.Logger
}

// NewS3Exporter usa credenciais estáticas quando informadas; sem elas o
// SDK cai na cadeia padrão (variáveis AWS_*, perfil, role).
func NewS3Exporter(opts Options, logger *applog.Logger) *Exporter {
	s3opts := s3.Options{Region: opts.Region}
	if opts.AccessKeyID != "" {
		s3opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	if opts.Endpoint != "" {
		// MinIO e afins
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}

	return newExporter(s3.New(s3opts), opts.Bucket, time.Now, logger)
}

func newExporter(client objectPutter, bucket string, now func() time.Time, logger *applog.Logger) *Exporter {
	return &Exporter{
		client: client,
		bucket: bucket,
		now:    now,
		log:    logger.WithComponent(applog.ComponentBackup),
	}
}

func (e *Exporter) Export(ctx context.Context, clients []domain.Client, sessions []domain.Session, actor string) (*Result, error) {
	now := e.now().UTC()
	snap := Snapshot{
		ExportedAt: now,
		ExportedBy: actor,
		Clients:    clients,
		Sessions:   sessions,
	}
	if snap.Clients == nil {
		snap.Clients = []domain.Client{}
	}
	if snap.Sessions == nil {
		snap.Sessions = []domain.Session{}
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := objectKey(now)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		e.log.ErrorContext(ctx, "snapshot upload failed", "key", key, applog.FieldError, err.Error())
		return nil, fmt.Errorf("upload snapshot %s: %w", key, err)
	}

	e.log.InfoContext(ctx, "snapshot exported",
		"bucket", e.bucket,
		"key", key,
		"clients", len(clients),
		"sessions", len(sessions),
	)

	return &Result{
		Bucket:   e.bucket,
		Key:      key,
		Clients:  len(clients),
		Sessions: len(sessions),
		Bytes:    len(body),
	}, nil
}

// objectKey agrupa por dia: snapshots/2024/03/15/103000-ab12cd34.json
func objectKey(t time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s.json", keyPrefix, t.Format("2006/01/02"), t.Format("150405"), uuid.NewString()[:8])
}
