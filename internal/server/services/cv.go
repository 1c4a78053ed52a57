package services

import (
	"context"
	"database/sql"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	sc "github.com/dmitrijs2005/hrconsole/internal/server/config"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// CVService hands out short-lived download links for candidate CVs kept in
// an S3-compatible bucket.
type CVService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCVService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *CVService {
	return &CVService{db: db, repomanager: m, config: cfg}
}

func (s *CVService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

// validResumeName accepts a bare object name: no directories, no traversal.
func validResumeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\"`) && path.Base(name) == name
}

// PresignedURL returns a GET URL for fileName valid for the configured CV
// URL lifetime. Names no candidate references yield common.ErrorNotFound.
func (s *CVService) PresignedURL(ctx context.Context, fileName string) (*models.CVLink, error) {
	if !validResumeName(fileName) {
		return nil, &models.ValidationError{Msg: "invalid file name"}
	}

	ok, err := s.repomanager.Candidates(s.db).ResumeExists(ctx, fileName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	ttl := s.config.CVURLValidityDuration
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket:                     &bucket,
		Key:                        &fileName,
		ResponseContentDisposition: aws.String(`attachment; filename="` + fileName + `"`),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, err
	}

	return &models.CVLink{URL: req.URL}, nil
}
