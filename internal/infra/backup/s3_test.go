package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestExporter_Export(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	put := &fakePutter{}
	exp := newExporter(put, "studio-backups", func() time.Time { return now }, applog.Discard())

	clients := []domain.Client{{ID: "c1", Name: "Ana"}}
	sessions := []domain.Session{{ID: "s1", ClientID: "c1", ClientName: "Ana", Date: "2024-04-01"}}

	res, err := exp.Export(context.Background(), clients, sessions, "u1")
	if err != nil {
		t.Fatal(err)
	}

	if aws.ToString(put.input.Bucket) != "studio-backups" {
		t.Errorf("bucket = %q", aws.ToString(put.input.Bucket))
	}
	key := aws.ToString(put.input.Key)
	if !strings.HasPrefix(key, "snapshots/2024/03/15/103000-") || !strings.HasSuffix(key, ".json") {
		t.Errorf("key = %q", key)
	}
	if res.Key != key || res.Clients != 1 || res.Sessions != 1 || res.Bytes != len(put.body) {
		t.Errorf("result = %+v", res)
	}

	var snap Snapshot
	if err := json.Unmarshal(put.body, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.ExportedBy != "u1" || len(snap.Sessions) != 1 || snap.Sessions[0].Date != "2024-04-01" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestExporter_EmptyListsAndFailure(t *testing.T) {
	put := &fakePutter{}
	exp := newExporter(put, "b", time.Now, applog.Discard())

	if _, err := exp.Export(context.Background(), nil, nil, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(put.body), `"clients":[]`) {
		t.Errorf("empty lists must encode as []: %s", put.body)
	}

	put.err = errors.New("access denied")
	if _, err := exp.Export(context.Background(), nil, nil, ""); err == nil {
		t.Error("expected upload error")
	}
}
