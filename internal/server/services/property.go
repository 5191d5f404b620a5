package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wintakam/wintakam/internal/common"
	sc "github.com/wintakam/wintakam/internal/server/config"
	"github.com/wintakam/wintakam/internal/server/models"
	"github.com/wintakam/wintakam/internal/server/repositories/repomanager"
)

// ErrNotOwner is returned when a caller tries to modify a listing they do not
// own.
var ErrNotOwner = errors.New("not the listing owner")

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// PropertyService serves listing rows and brokers photo uploads to object
// storage via presigned URLs.
type PropertyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewPropertyService constructs a PropertyService.
func NewPropertyService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *PropertyService {
	return &PropertyService{db: db, repomanager: m, config: cfg}
}

// GetAll returns every listing, newest first.
func (s *PropertyService) GetAll(ctx context.Context) ([]*models.Property, error) {
	return s.repomanager.Properties(s.db).SelectAll(ctx)
}

// GetByOwner returns the listings owned by ownerID, newest first.
func (s *PropertyService) GetByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	return s.repomanager.Properties(s.db).SelectByOwner(ctx, ownerID)
}

// GetByID returns one listing or common.ErrorNotFound.
func (s *PropertyService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	return s.repomanager.Properties(s.db).GetByID(ctx, id)
}

// Create inserts a new listing owned by ownerID.
func (s *PropertyService) Create(ctx context.Context, p *models.Property, ownerID string) (*models.Property, error) {
	p.OwnerID = ownerID
	if p.Status == "" {
		p.Status = "available"
	}
	if p.Currency == "" {
		p.Currency = "XAF"
	}
	return s.repomanager.Properties(s.db).Create(ctx, p)
}

// GetImageStorageKey builds the object key for a new listing photo.
func GetImageStorageKey(propertyID string) string {
	return fmt.Sprintf("properties/%s/%v", propertyID, uuid.New())
}

func (s *PropertyService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignImageUpload checks that userID owns the listing and returns a
// storage key plus a presigned PUT URL valid for 15 minutes.
func (s *PropertyService) PresignImageUpload(ctx context.Context, propertyID, userID string) (string, string, error) {
	p, err := s.GetByID(ctx, propertyID)
	if err != nil {
		return "", "", err
	}
	if p.OwnerID != userID {
		return "", "", ErrNotOwner
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetImageStorageKey(propertyID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// AttachImage registers an uploaded object with its listing. The key must be
// one previously issued for this listing, and only the owner may attach.
func (s *PropertyService) AttachImage(ctx context.Context, propertyID, userID, key string) error {
	p, err := s.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return ErrNotOwner
	}
	if !strings.HasPrefix(key, "properties/"+propertyID+"/") {
		return common.ErrorNotFound
	}

	url := strings.TrimSuffix(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
	return s.repomanager.Properties(s.db).AppendImage(ctx, propertyID, url)
}
