package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
	"github.com/pageforge/pageforge-backend/pkg/env"
)

// DraftStorage keeps generated HTML in S3 between checkout creation and the
// payment webhook. Objects are write-once; retention of abandoned drafts is
// the bucket's lifecycle policy, not ours.
type DraftStorage struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ interfaces.DraftStore = (*DraftStorage)(nil)

func NewDraftStorage(config aws.Config) *DraftStorage {
	return &DraftStorage{
		initClient(config),
		env.GetEnv("S3_BUCKET", "pageforge-web"),
		env.GetEnv("S3_DRAFT_PREFIX", "drafts/"),
	}
}

func initClient(config aws.Config) *s3.Client {
	client := s3.NewFromConfig(config, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

func (s *DraftStorage) PutDraft(ctx context.Context, draftID string, html string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.draftKey(draftID)),
		Body:          strings.NewReader(html),
		ContentType:   aws.String("text/html"),
		ContentLength: aws.Int64(int64(len(html))),
	})
	if err != nil {
		return errs.RetryableError{Err: fmt.Errorf("error storing draft %v, %v", draftID, err)}
	}

	return nil
}

func (s *DraftStorage) GetDraft(ctx context.Context, draftID string) (string, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.draftKey(draftID)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", errs.NotFoundError{Msg: fmt.Sprintf("draft %v", draftID)}
		}
		return "", errs.RetryableError{Err: fmt.Errorf("error downloading draft %v, %v", draftID, err)}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, resp.Body); err != nil {
		return "", errs.RetryableError{Err: fmt.Errorf("error reading draft contents, %v", err)}
	}

	return buf.String(), nil
}

func (s *DraftStorage) draftKey(draftID string) string {
	return s.prefix + draftID + ".html"
}
