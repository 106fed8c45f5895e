package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/filex"
	sc "github.com/dmitrijs2005/pagekeeper/internal/server/config"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long an avatar upload URL stays valid.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	newObjectID = uuid.NewString
)

// AvatarSlot is a presigned upload target and the public address of the
// object once uploaded.
type AvatarSlot struct {
	Key       string
	UploadURL string
	PublicURL string
}

type AvatarService struct {
	config *sc.Config
}

func NewAvatarService(cfg *sc.Config) *AvatarService {
	return &AvatarService{config: cfg}
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadSlot presigns a PUT for a new avatar object of userID.
func (s *AvatarService) UploadSlot(ctx context.Context, userID, contentType string) (*AvatarSlot, error) {
	ext, ok := filex.ImageExt(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", common.ErrorInvalidInput, contentType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := fmt.Sprintf("users/%s/%s%s", userID, newObjectID(), ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &AvatarSlot{Key: key, UploadURL: req.URL, PublicURL: s.publicURL(key)}, nil
}

func (s *AvatarService) publicURL(key string) string {
	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	u, err := url.JoinPath(base, s.config.S3Bucket, key)
	if err != nil {
		return base + "/" + s.config.S3Bucket + "/" + key
	}
	return u
}
