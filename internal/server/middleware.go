package server

import (
	"net"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// sessionLimiter caps the number of concurrent sessions.
type sessionLimiter struct {
	sem *semaphore.Weighted
	max int
}

func newSessionLimiter(max int) *sessionLimiter {
	if max <= 0 {
		max = 32
	}
	return &sessionLimiter{sem: semaphore.NewWeighted(int64(max)), max: max}
}

func (l *sessionLimiter) acquire() bool {
	return l.sem.TryAcquire(1)
}

func (l *sessionLimiter) release() {
	l.sem.Release(1)
}

// MaxSessionsMiddleware rejects sessions once max are already active.
func MaxSessionsMiddleware(max int, log *zap.Logger) wish.Middleware {
	l := newSessionLimiter(max)
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			if !l.acquire() {
				log.Warn("max sessions reached",
					zap.String("remote_ip", remoteIP(s)),
					zap.Int("max_sessions", l.max))
				_, _ = s.Write([]byte("server busy, try again later\n"))
				_ = s.Exit(1)
				return
			}
			defer l.release()
			next(s)
		}
	}
}

// AccessLogMiddleware logs the start and end of every session.
func AccessLogMiddleware(log *zap.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			start := time.Now()
			fields := []zap.Field{
				zap.String("user", s.User()),
				zap.String("remote_ip", remoteIP(s)),
				zap.String("client", s.Context().ClientVersion()),
			}
			log.Info("session start", fields...)
			next(s)
			log.Info("session end", append(fields, zap.Duration("duration", time.Since(start)))...)
		}
	}
}

func remoteIP(s ssh.Session) string {
	return hostOf(s.RemoteAddr())
}

func hostOf(remote net.Addr) string {
	if remote == nil {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String()
	}

	if host == "" {
		return "unknown"
	}
	return host
}
