package worker

// email_worker.go
// Sends the order confirmation mail with the PDF receipt attached.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReciboMailer is the part of infra.Mailer the worker needs.
type ReciboMailer interface {
	Enabled() bool
	SendRecibo(to, subject, body, pdfPath string) error
}

type EmailWorker struct {
	ordenes  repository.OrdenRepository
	usuarios repository.UsuarioRepository
	mailer   ReciboMailer
	pdfPath  string
}

func NewEmailWorker(ordenes repository.OrdenRepository, usuarios repository.UsuarioRepository, mailer ReciboMailer, pdfPath string) *EmailWorker {
	return &EmailWorker{ordenes: ordenes, usuarios: usuarios, mailer: mailer, pdfPath: pdfPath}
}

// Process renders the receipt and mails it to the order owner. Payloads that
// can never succeed (bad id, missing order or user) are dropped, not retried.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload OrdenConfirmadaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	ordenID, err := uuid.Parse(payload.OrdenID)
	if err != nil {
		log.Error().Str("orden_id", payload.OrdenID).Msg("email_worker: invalid orden_id")
		return nil
	}

	orden, err := w.ordenes.FindByID(ctx, ordenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Str("orden_id", payload.OrdenID).Msg("email_worker: orden not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load orden: %w", err)
	}
	usuario, err := w.usuarios.FindByID(ctx, orden.UsuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Str("orden_id", payload.OrdenID).Msg("email_worker: owner not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load usuario: %w", err)
	}

	if !w.mailer.Enabled() {
		log.Debug().Str("orden_id", payload.OrdenID).Msg("email_worker: SMTP not configured, skipping")
		return nil
	}

	pdfPath, err := infra.GenerarReciboPDF(orden, usuario, w.pdfPath)
	if err != nil {
		return err
	}

	subject := "Confirmación de tu orden " + orden.ID.String()
	body := fmt.Sprintf("Hola %s,\n\nRecibimos tu orden por $%s (%s). Adjuntamos el recibo.\n",
		usuario.Nombre, orden.Total.StringFixed(2), orden.MetodoPago)
	if err := w.mailer.SendRecibo(usuario.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("send recibo: %w", err)
	}
	log.Info().Str("to", usuario.Email).Str("orden_id", payload.OrdenID).Msg("email_worker: recibo sent")
	return nil
}
