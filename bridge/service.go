package bridge

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kataras/jwtengine"
	"github.com/kataras/jwtengine/internal/logging"
	"github.com/kataras/jwtengine/internal/logging/logfields"
	"github.com/kataras/jwtengine/internal/metrics"
)

// Service runs token operations on a bounded number of worker slots.
//
// Cancellation only applies while waiting for a slot: once an operation
// holds one it runs to completion, the engine itself never blocks.
// A Service is safe for concurrent use.
type Service struct {
	concurrency int64
	sem         *semaphore.Weighted
	leeway      time.Duration
	now         func() time.Time
	log         *logrus.Entry
	metrics     *metrics.TokenMetrics
}

// Option configures a Service.
type Option func(s *Service) error

// WithConcurrency sets the number of operations which may run at once.
// Defaults to GOMAXPROCS.
func WithConcurrency(n int64) Option {
	return func(s *Service) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		s.concurrency = n
		return nil
	}
}

// WithLeeway sets the clock skew tolerated on "exp".
func WithLeeway(d time.Duration) Option {
	return func(s *Service) error {
		if d < 0 {
			return fmt.Errorf("leeway must not be negative, got %v", d)
		}
		s.leeway = d
		return nil
	}
}

// WithClock sets the time source used for claim validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		s.now = now
		return nil
	}
}

// WithLogger sets the log entry operations are logged to, at debug level.
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Service) error {
		s.log = entry
		return nil
	}
}

// WithRegisterer enables Prometheus metrics, registered with "reg".
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) error {
		s.metrics = metrics.NewTokenMetrics(reg)
		return nil
	}
}

// NewService returns a Service configured by the given options.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		concurrency: int64(runtime.GOMAXPROCS(0)),
		now:         time.Now,
		log:         logging.ComponentLogger("bridge"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.sem = semaphore.NewWeighted(s.concurrency)
	return s, nil
}

// Encode signs the input claims. The algorithm defaults to HS256 and the
// key to the input secret.
func (s *Service) Encode(ctx context.Context, in ClaimsInput) (string, error) {
	var token string
	alg := in.algorithm()
	fields := logrus.Fields{}
	if in.KeyID != "" {
		fields[logfields.KeyID] = in.KeyID
	}
	if in.Jti != "" {
		fields[logfields.TokenID] = in.Jti
	}
	err := s.run(ctx, metrics.OperationEncode, fields, func() (jwt.AlgorithmID, error) {
		var opts []jwt.EncodeOption
		if in.KeyID != "" {
			opts = append(opts, jwt.WithKeyID(in.KeyID))
		}

		var err error
		token, err = jwt.Encode(alg, in.key(), in.claims(), opts...)
		return alg, err
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// EncodePair signs an access and a refresh token, e.g. with a short and a
// long expiration. Nothing is returned unless both succeed.
func (s *Service) EncodePair(ctx context.Context, access, refresh ClaimsInput) (jwt.TokenPair, error) {
	accessToken, err := s.Encode(ctx, access)
	if err != nil {
		return jwt.TokenPair{}, fmt.Errorf("access token: %w", err)
	}

	refreshToken, err := s.Encode(ctx, refresh)
	if err != nil {
		return jwt.TokenPair{}, fmt.Errorf("refresh token: %w", err)
	}

	return jwt.NewTokenPair(accessToken, refreshToken), nil
}

// Decode verifies the token signature and its "exp" and returns its content
// as a flat record. Like Verify it looks at no other claim, a token which
// is not valid yet is decoded. "key" may be a string HMAC secret.
func (s *Service) Decode(ctx context.Context, token string, key jwt.PublicKey) (*DecodedData, error) {
	var data *DecodedData
	fields := logrus.Fields{}
	err := s.run(ctx, metrics.OperationDecode, fields, func() (jwt.AlgorithmID, error) {
		t, err := jwt.Decode(token, normalizeKey(key))
		if err != nil {
			return headerAlgorithm(token), err
		}
		tokenFields(fields, t)

		if s.expired(t) {
			return t.Algorithm(), jwt.ErrExpired
		}

		data = newDecodedData(t)
		return t.Algorithm(), nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Verify reports whether the token signature is valid and its "exp" is in
// the future. An expired but authentic token is (false, nil); structural,
// algorithm, key and signature failures are errors. No other claim is
// looked at: use jwt.Check for a full Policy.
func (s *Service) Verify(ctx context.Context, token string, key jwt.PublicKey) (bool, error) {
	var valid bool
	fields := logrus.Fields{}
	err := s.run(ctx, metrics.OperationVerify, fields, func() (jwt.AlgorithmID, error) {
		t, err := jwt.Decode(token, normalizeKey(key))
		if err != nil {
			return headerAlgorithm(token), err
		}
		tokenFields(fields, t)

		if s.expired(t) {
			return t.Algorithm(), jwt.ErrExpired
		}

		valid = true
		return t.Algorithm(), nil
	})
	if errors.Is(err, jwt.ErrExpired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return valid, nil
}

// VerifyAll verifies a batch of tokens concurrently, within the service
// concurrency limit. The result at index i belongs to tokens[i].
//
// The first error stops the scheduling of the tokens not started yet and
// is returned, prefixed with the failing index.
func (s *Service) VerifyAll(ctx context.Context, tokens []string, key jwt.PublicKey) ([]bool, error) {
	s.metrics.Batch(len(tokens))
	s.log.WithFields(logrus.Fields{
		logfields.BatchSize:   len(tokens),
		logfields.Concurrency: s.concurrency,
	}).Debug("Verifying token batch")
	results := make([]bool, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(s.concurrency))
	for i, token := range tokens {
		g.Go(func() error {
			ok, err := s.Verify(gctx, token, key)
			if err != nil {
				return fmt.Errorf("token %d: %w", i, err)
			}
			results[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Concurrency returns the number of worker slots.
func (s *Service) Concurrency() int64 {
	return s.concurrency
}

// expired reports whether "exp" has passed, the leeway considered.
func (s *Service) expired(t *jwt.Token) bool {
	return s.now().Add(-s.leeway).Unix() >= t.Claims.Expiry
}

// run executes fn on a worker slot, then records and logs its outcome
// along with "fields", which fn may still fill in.
func (s *Service) run(ctx context.Context, op metrics.Operation, fields logrus.Fields, fn func() (jwt.AlgorithmID, error)) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	s.metrics.Acquired(1)
	defer func() {
		s.metrics.Acquired(-1)
		s.sem.Release(1)
	}()

	start := time.Now()
	alg, err := fn()
	took := time.Since(start)

	kind := jwt.KindOf(err).String()
	result := metrics.ResultSuccess
	if err != nil {
		result = kind
	}
	s.metrics.Observe(op, string(alg), result, took)

	logging.OperationLogger(s.log, string(op), string(alg)).
		WithFields(fields).
		WithFields(logging.ResultFields(kind, err, took)).
		Debug("Token operation finished")

	return err
}

// tokenFields adds the identifiers of a verified token to its log fields.
func tokenFields(fields logrus.Fields, t *jwt.Token) {
	if t.Header.KeyID != "" {
		fields[logfields.KeyID] = t.Header.KeyID
	}
	if t.Claims.ID != "" {
		fields[logfields.TokenID] = t.Claims.ID
	}
}

// headerAlgorithm names the algorithm of a token for diagnostics only.
// Unknown identifiers are not echoed, they would blow up label cardinality.
func headerAlgorithm(token string) jwt.AlgorithmID {
	h, err := jwt.ParseUnverified(token)
	if err != nil || h.Algorithm.Family() == 0 {
		return ""
	}
	return h.Algorithm
}
