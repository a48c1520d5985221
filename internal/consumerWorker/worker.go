package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"github.com/Rajesh001100/cultural/internal/dto"
	"github.com/Rajesh001100/cultural/internal/mailer"
	"github.com/Rajesh001100/cultural/internal/rabbit"
)

// Reader drains the ticket-email queue. Delivery failures are logged and
// the message is dropped; the registration stays PAID regardless.
type Reader struct {
	RMQ    *rabbit.Client
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:  rmq,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("ticket email worker started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.TicketEmailMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal message: %s", string(body))
				return nil
			}

			zlog.Logger.Info().
				Int64("registration_id", msg.RegistrationID).
				Str("event", msg.Event).
				Msg("received ticket email job")

			if err := r.mail.SendTicket(
				msg.Email,
				msg.Name,
				msg.Event,
				msg.RegistrationID,
				msg.Amount,
				msg.PassType,
			); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Int64("registration_id", msg.RegistrationID).
					Msg("Failed to send ticket email")
			}

			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("ticket email worker stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
