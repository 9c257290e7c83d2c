package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/prognoshealth/vpcproxy/config"
	"github.com/prognoshealth/vpcproxy/lambdautils"
	"github.com/prognoshealth/vpcproxy/proxy"
)

var forwarder *proxy.Forwarder

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger, err := lambdautils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}

	logger.WithField("stage", cfg.Stage).WithField("tracing", cfg.TracingEnabled).Info("vpc proxy initialized")

	// one container per execution environment, reused across warm invocations
	forwarder = proxy.NewForwarder(proxy.NewHTTPClient(cfg.TracingEnabled), logger, &lambdautils.Container{})
}

func main() {
	lambda.Start(forwarder.Handle)
}
