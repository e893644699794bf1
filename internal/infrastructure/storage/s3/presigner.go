package s3

import (
	"context"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
)

const defaultMaxObjectBytes = 50 << 20

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// MaxObjectBytes caps the upload size enforced by the POST policy.
	MaxObjectBytes int64
}

// Presigner issues presigned POST forms for tournament media objects. The
// policy pins the object key, the content type and the size range, so S3
// rejects any upload that does not match what was approved.
type Presigner struct {
	bucket   string
	maxBytes int64
	presign  *awss3.PresignClient
}

// NewPresigner builds an S3 client. Static keys are used when both are set,
// otherwise the default credential chain applies. A custom endpoint switches
// to path-style addressing for S3-compatible stores.
func NewPresigner(ctx context.Context, cfg Config) (*Presigner, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, crerr.New("media bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(strings.TrimSpace(cfg.Region)),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "load aws config")
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	maxBytes := cfg.MaxObjectBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxObjectBytes
	}

	return &Presigner{
		bucket:   bucket,
		maxBytes: maxBytes,
		presign:  awss3.NewPresignClient(client),
	}, nil
}

func (p *Presigner) PresignUpload(ctx context.Context, objectKey, contentType string, ttl time.Duration) (media.UploadForm, error) {
	objectKey = strings.TrimLeft(strings.TrimSpace(objectKey), "/")
	if objectKey == "" {
		return media.UploadForm{}, crerr.New("object key is required")
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return media.UploadForm{}, crerr.New("content type is required")
	}

	req, err := p.presign.PresignPostObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, func(o *awss3.PresignPostOptions) {
		o.Expires = ttl
		o.Conditions = []interface{}{
			[]interface{}{"eq", "$Content-Type", contentType},
			[]interface{}{"content-length-range", 1, p.maxBytes},
		}
	})
	if err != nil {
		return media.UploadForm{}, crerr.Wrapf(err, "presign post object key=%s", objectKey)
	}

	fields := make(map[string]string, len(req.Values)+1)
	for k, v := range req.Values {
		fields[k] = v
	}
	fields["Content-Type"] = contentType

	return media.UploadForm{URL: req.URL, Fields: fields}, nil
}
