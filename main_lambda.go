//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeResult struct {
	RunReport
	Result string `json:"result"`
}

// decodeRequest accepts {"problem":"","input":"<text file>","order":""} or
// one of the structured layouts accepted for .json input files.
func decodeRequest(body string) (*Input, Config, error) {
	cfg := DefaultConfig()
	if !gjson.Valid(body) {
		return nil, cfg, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	req := gjson.Parse(body)
	if order := req.Get("order"); order.Exists() {
		cfg.Order = order.String()
		if err := cfg.validate(); err != nil {
			return nil, cfg, err
		}
	}
	kind := parseProblemKind(req.Get("problem").String())
	if text := req.Get("input"); text.Exists() {
		in, err := parseText([]byte(text.String()), kind)
		return in, cfg, err
	}
	in, err := loadJSON(body, kind)
	return in, cfg, err
}

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	in, cfg, err := decodeRequest(body)
	if err != nil {
		return errResp(400, err.Error())
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return errResp(500, err.Error())
	}
	defer log.Sync()

	out, report, err := solve(in, cfg, log)
	if err != nil {
		code := 500
		if errors.Is(err, ErrMalformedInput) {
			code = 400
		}
		return errResp(code, err.Error())
	}

	respJSON, _ := json.Marshal(optimizeResult{RunReport: report, Result: out})
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
