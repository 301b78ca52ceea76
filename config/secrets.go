package config

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Parameter store names holding prod secrets.
const (
	ParamMetalPriceAPIKey = "GOLDSITE_METALPRICE_API_KEY"
	ParamRelayAccessKey   = "GOLDSITE_WEB3FORMS_ACCESS_KEY"
	ParamMailUser         = "GOLDSITE_GMAIL_USER"
	ParamMailPassword     = "GOLDSITE_GMAIL_APP_PASSWORD"
	ParamDBHost           = "GOLDSITE_DB_HOST"
	ParamDBUser           = "GOLDSITE_DB_USER"
	ParamDBPassword       = "GOLDSITE_DB_PASSWORD"
)

// parameterLookup returns the value stored under name, or "" when unavailable.
type parameterLookup func(name string, decrypt bool) string

// resolveSecrets overrides credentials with parameter store values.
// Empty lookups keep whatever config.yaml or the environment provided.
func (c *Config) resolveSecrets(lookup parameterLookup) {
	set := func(dst *string, name string) {
		if v := lookup(name, true); v != "" {
			*dst = v
		}
	}

	set(&c.MetalPrice.APIKey, ParamMetalPriceAPIKey)
	set(&c.Relay.AccessKey, ParamRelayAccessKey)
	set(&c.Mail.User, ParamMailUser)
	set(&c.Mail.Password, ParamMailPassword)
	set(&c.Postgres.Host, ParamDBHost)
	set(&c.Postgres.User, ParamDBUser)
	set(&c.Postgres.Password, ParamDBPassword)

	if c.Mail.From == "" {
		c.Mail.From = c.Mail.User
	}
	if c.Mail.To == "" {
		c.Mail.To = c.Mail.From
	}
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	baseCtx := context.Background()
	ctxWithTimeout, cancel := context.WithTimeout(baseCtx, 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
