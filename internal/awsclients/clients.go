// Package awsclients centralizes aws-sdk-go-v2 client construction so
// every component builds its clients the same way, from whichever
// aws.Config the credential broker hands it (ambient for the hub
// account, assumed for a tenant).
package awsclients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// LoadAmbient loads the Lambda execution role's ambient aws.Config: the
// credentials the hub account itself runs as, used both for hub-bypass
// invocations and for the initial STS AssumeRole call into a tenant.
func LoadAmbient(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load ambient aws config: %w", err)
	}
	return cfg, nil
}

// Clients is a lazily-populated bundle of per-service clients built from
// one aws.Config (ambient or assumed). A fresh Clients is constructed per
// invocation per tenant session — nothing here is shared across
// invocations.
type Clients struct {
	cfg aws.Config

	sts    *sts.Client
	s3     *s3.Client
	sqs    *sqs.Client
	ec2    *ec2.Client
	elbv2  *elasticloadbalancingv2.Client
	rds    *rds.Client
	ec     *elasticache.Client
	iam    *iam.Client
	lambda *lambda.Client
}

// New wraps an aws.Config with a lazy client bundle.
func New(cfg aws.Config) *Clients { return &Clients{cfg: cfg} }

// Config returns the underlying aws.Config.
func (c *Clients) Config() aws.Config { return c.cfg }

func (c *Clients) STS() *sts.Client {
	if c.sts == nil {
		c.sts = sts.NewFromConfig(c.cfg)
	}
	return c.sts
}

func (c *Clients) S3() *s3.Client {
	if c.s3 == nil {
		c.s3 = s3.NewFromConfig(c.cfg)
	}
	return c.s3
}

func (c *Clients) SQS() *sqs.Client {
	if c.sqs == nil {
		c.sqs = sqs.NewFromConfig(c.cfg)
	}
	return c.sqs
}

func (c *Clients) EC2() *ec2.Client {
	if c.ec2 == nil {
		c.ec2 = ec2.NewFromConfig(c.cfg)
	}
	return c.ec2
}

func (c *Clients) ELBV2() *elasticloadbalancingv2.Client {
	if c.elbv2 == nil {
		c.elbv2 = elasticloadbalancingv2.NewFromConfig(c.cfg)
	}
	return c.elbv2
}

func (c *Clients) RDS() *rds.Client {
	if c.rds == nil {
		c.rds = rds.NewFromConfig(c.cfg)
	}
	return c.rds
}

func (c *Clients) ElastiCache() *elasticache.Client {
	if c.ec == nil {
		c.ec = elasticache.NewFromConfig(c.cfg)
	}
	return c.ec
}

func (c *Clients) IAM() *iam.Client {
	if c.iam == nil {
		c.iam = iam.NewFromConfig(c.cfg)
	}
	return c.iam
}

func (c *Clients) Lambda() *lambda.Client {
	if c.lambda == nil {
		c.lambda = lambda.NewFromConfig(c.cfg)
	}
	return c.lambda
}
