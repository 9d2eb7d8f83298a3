// Package applicability decides whether GDPR consent must be collected for a
// request. The regulation applies on either of two limbs: the controller is
// established in the EU, or the data subject's source IP resolves to the EU.
package applicability

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"assent/internal/geoip"
	"assent/internal/platform/metrics"
	"assent/internal/tracer"
	dErrors "assent/pkg/domain-errors"
)

// Config carries the jurisdiction constants for the applicability test.
type Config struct {
	// ControllerEstablishedInEU short-circuits the check: an EU-established
	// controller needs consent from every data subject regardless of origin.
	ControllerEstablishedInEU bool

	// EUContinentCode is the continent code that counts as EU territory.
	EUContinentCode string
}

// Service answers the consent-required question.
type Service struct {
	cfg      Config
	resolver geoip.Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer for geolocation spans.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// NewService constructs the applicability service.
func NewService(cfg Config, resolver geoip.Resolver, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		cfg:      cfg,
		resolver: resolver,
		logger:   logger,
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// IsRequired reports whether consent must be collected for a request
// originating from sourceIP. The geolocation limb is only evaluated when the
// establishment limb does not already decide the answer.
func (s *Service) IsRequired(ctx context.Context, sourceIP string) (required bool, err error) {
	if strings.TrimSpace(sourceIP) == "" {
		return false, dErrors.New(dErrors.CodeValidation, "source ip is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanApplicabilityCheck,
		tracer.Bool(tracer.AttrEstablishedInEU, s.cfg.ControllerEstablishedInEU))
	defer func() {
		span.SetAttributes(tracer.Bool(tracer.AttrRequired, required))
		span.End(err)
	}()

	if s.cfg.ControllerEstablishedInEU {
		s.metrics.IncApplicabilityCheck(metrics.OutcomeRequired)
		return true, nil
	}

	inEU, err := s.ipInEU(ctx, sourceIP)
	if err != nil {
		s.metrics.IncApplicabilityCheck(metrics.OutcomeError)
		return false, err
	}

	if inEU {
		s.metrics.IncApplicabilityCheck(metrics.OutcomeRequired)
	} else {
		s.metrics.IncApplicabilityCheck(metrics.OutcomeNotRequired)
	}
	return inEU, nil
}

func (s *Service) ipInEU(ctx context.Context, sourceIP string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGeoResolve)
	start := time.Now()

	loc, err := s.resolver.Resolve(ctx, sourceIP)
	s.metrics.ObserveGeoResolveLatency(time.Since(start).Seconds())
	if err != nil {
		span.End(err)
		s.logger.WarnContext(ctx, "geolocation lookup failed", "source_ip", sourceIP, "error", err)
		return false, dErrors.Wrap(err, dErrors.CodeExternalService,
			"could not determine location for ip "+sourceIP+": "+err.Error())
	}

	span.SetAttributes(tracer.String(tracer.AttrContinentCode, loc.ContinentCode))
	span.End(nil)
	return loc.ContinentCode == s.cfg.EUContinentCode, nil
}
