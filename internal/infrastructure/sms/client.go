// Package sms envía mensajes de texto por la pasarela HTTP configurada.
package sms

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Swasthya-api/pkg/config"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

// Client implementa clinic.SMSSender. Sin BaseURL solo registra el mensaje en el log.
type Client struct {
	http   *resty.Client
	sender string
	log    *logger.Logger
}

// NewClient construye el cliente de la pasarela.
func NewClient(cfg config.SMSConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{sender: cfg.SenderID, log: log.Component("sms")}
	if base := strings.TrimSuffix(cfg.BaseURL, "/"); base != "" {
		c.http = resty.New().
			SetBaseURL(base).
			SetAuthToken(cfg.Token).
			SetHeader("Content-Type", "application/json").
			SetTimeout(15 * time.Second).
			SetRetryCount(2)
	}
	return c
}

type sendRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type apiError struct {
	Message string `json:"message"`
}

// Send envía un mensaje.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.http == nil {
		c.log.Info().Str("to", phone).Str("text", message).Msg("sms (pasarela no configurada)")
		return nil
	}
	apiErr := new(apiError)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendRequest{From: c.sender, To: phone, Text: message}).
		SetError(apiErr).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("sms: enviar: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("sms: pasarela respondió %d: %s", resp.StatusCode(), apiErr.Message)
	}
	return nil
}
