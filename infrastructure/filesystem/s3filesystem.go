// Package filesystem wraps the S3 buckets the service reads from, mainly
// the holiday calendar workbooks finance uploads.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// ReadFile streams one object into out.
func ReadFile(bucket string, key string, ctx context.Context, out io.Writer) error {
	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to read object %s from bucket %s: %w", key, bucket, err)
	}
	return nil
}

// ListWorkbooks returns the xlsx/xls keys in the bucket, skipping keys whose
// final segment starts with an underscore (upload-in-progress convention).
func ListWorkbooks(bucket string, ctx context.Context) ([]string, error) {
	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil && isWorkbookKey(*obj.Key) {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}

func isWorkbookKey(key string) bool {
	lower := strings.ToLower(key)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return false
	}
	return !strings.HasPrefix(key, "_") && !strings.Contains(key, "/_")
}
