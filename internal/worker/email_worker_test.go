package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body, pdfPath string
}

type stubMailer struct {
	enabled bool
	err     error
	sent    []sentMail
}

func (m *stubMailer) Enabled() bool { return m.enabled }

func (m *stubMailer) SendRecibo(to, subject, body, pdfPath string) error {
	m.sent = append(m.sent, sentMail{to, subject, body, pdfPath})
	return m.err
}

type emailFixture struct {
	worker *EmailWorker
	mailer *stubMailer
	orden  *model.Orden
}

func newEmailFixture(t *testing.T, mailer *stubMailer) *emailFixture {
	t.Helper()
	ctx := context.Background()
	usuarios := repotest.NewUsuarios()
	ordenes := repotest.NewOrdenes()

	u := &model.Usuario{Nombre: "Lucía", Email: "lucia@example.com", PasswordHash: "x", Rol: model.RolUsuario}
	require.NoError(t, usuarios.Create(ctx, u))
	o := &model.Orden{
		UsuarioID:  u.ID,
		Items:      []model.OrdenItem{{ProductoID: uuid.New(), Nombre: "Mouse", Precio: decimal.NewFromInt(50), Cantidad: 2}},
		Total:      decimal.NewFromInt(100),
		MetodoPago: model.MetodoPaypal,
	}
	require.NoError(t, ordenes.Create(ctx, o))

	return &emailFixture{
		worker: NewEmailWorker(ordenes, usuarios, mailer, t.TempDir()),
		mailer: mailer,
		orden:  o,
	}
}

func payloadFor(t *testing.T, ordenID string) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(OrdenConfirmadaPayload{OrdenID: ordenID})
	require.NoError(t, err)
	return b
}

func TestEmailWorker_EnviaRecibo(t *testing.T) {
	f := newEmailFixture(t, &stubMailer{enabled: true})

	require.NoError(t, f.worker.Process(context.Background(), payloadFor(t, f.orden.ID.String())))

	require.Len(t, f.mailer.sent, 1)
	m := f.mailer.sent[0]
	assert.Equal(t, "lucia@example.com", m.to)
	assert.Contains(t, m.subject, f.orden.ID.String())
	assert.Contains(t, m.body, "$100.00")
	_, err := os.Stat(m.pdfPath)
	assert.NoError(t, err)
}

func TestEmailWorker_SMTPDeshabilitado(t *testing.T) {
	f := newEmailFixture(t, &stubMailer{enabled: false})

	require.NoError(t, f.worker.Process(context.Background(), payloadFor(t, f.orden.ID.String())))
	assert.Empty(t, f.mailer.sent)
}

func TestEmailWorker_PayloadsSinArreglo(t *testing.T) {
	f := newEmailFixture(t, &stubMailer{enabled: true})
	ctx := context.Background()

	assert.NoError(t, f.worker.Process(ctx, json.RawMessage(`[`)))
	assert.NoError(t, f.worker.Process(ctx, payloadFor(t, "no-uuid")))
	assert.NoError(t, f.worker.Process(ctx, payloadFor(t, uuid.NewString())))
	assert.Empty(t, f.mailer.sent)
}

func TestEmailWorker_FalloDeEnvioSeReintenta(t *testing.T) {
	f := newEmailFixture(t, &stubMailer{enabled: true, err: errors.New("relay refused")})

	err := f.worker.Process(context.Background(), payloadFor(t, f.orden.ID.String()))
	assert.ErrorContains(t, err, "relay refused")
}
