package utils

import (
	"context"
	"sync"
	"time"

	"github.com/cppla/postbox/config"
)

func loginKey(kind, ip string) string {
	return "login:" + kind + ":" + ip
}

type failWindow struct {
	count int
	until time.Time
}

var (
	loginFails      = map[string]failWindow{}
	loginBans       = map[string]time.Time{}
	loginMemMu      sync.Mutex
	loginFailWindow = time.Hour
)

// LoginIsBanned reports whether ip is temporarily locked out of /login.
func LoginIsBanned(ip string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		n, err := rc.Exists(ctx, loginKey("ban", ip)).Result()
		if err == nil {
			return n > 0
		}
	}
	loginMemMu.Lock()
	defer loginMemMu.Unlock()
	until, ok := loginBans[ip]
	if ok && time.Now().After(until) {
		delete(loginBans, ip)
		return false
	}
	return ok
}

// LoginFailRecord counts a failed login for ip and bans it once the hourly
// limit is reached. It returns the count in the current window.
func LoginFailRecord(ip string) int {
	cfg := config.Get()
	n := loginFailIncr(ip)
	if cfg.LoginMaxFailures > 0 && n >= cfg.LoginMaxFailures {
		loginBan(ip, time.Duration(cfg.LoginBanMinutes)*time.Minute)
		Sugar.Warnf("login locked out ip=%s failures=%d", ip, n)
	}
	return n
}

// LoginReset clears the failure counter after a successful login.
func LoginReset(ip string) {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		_ = rc.Del(ctx, loginKey("fail", ip)).Err()
	}
	loginMemMu.Lock()
	delete(loginFails, ip)
	loginMemMu.Unlock()
}

func loginFailIncr(ip string) int {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		key := loginKey("fail", ip)
		n, err := rc.Incr(ctx, key).Result()
		if err == nil {
			if n == 1 {
				_ = rc.Expire(ctx, key, loginFailWindow).Err()
			}
			return int(n)
		}
	}

	now := time.Now()
	loginMemMu.Lock()
	defer loginMemMu.Unlock()
	w := loginFails[ip]
	if now.After(w.until) {
		w = failWindow{until: now.Add(loginFailWindow)}
	}
	w.count++
	loginFails[ip] = w
	return w.count
}

func loginBan(ip string, d time.Duration) {
	if d <= 0 {
		d = 15 * time.Minute
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		if err := rc.Set(ctx, loginKey("ban", ip), "1", d).Err(); err == nil {
			return
		}
	}
	loginMemMu.Lock()
	loginBans[ip] = time.Now().Add(d)
	loginMemMu.Unlock()
}
