// Package ratelimiter はキー単位のインメモリ・レートリミッターを提供します。
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter はキーごとに操作の頻度を制限するインターフェースです。
type Limiter interface {
	Allow(key string) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter はキー（IPなど）ごとにトークンバケットを保持します。
// window あたり limit 回までを許可し、バーストも limit まで許容します。
type KeyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*entry
	every     rate.Limit
	burst     int
	expiresIn time.Duration
	now       func() time.Time
}

// NewKeyedLimiter は新しいKeyedLimiterのインスタンスを生成します。
// limit <= 0 または window <= 0 の場合は常に許可します。
func NewKeyedLimiter(limit int, window time.Duration) *KeyedLimiter {
	kl := &KeyedLimiter{
		limiters:  make(map[string]*entry),
		burst:     limit,
		expiresIn: 3 * window,
		now:       time.Now,
	}
	if limit > 0 && window > 0 {
		kl.every = rate.Every(window / time.Duration(limit))
	} else {
		kl.every = rate.Inf
	}
	return kl
}

// Allow はキーに対する1回の操作を許可するかどうかを返します。
func (kl *KeyedLimiter) Allow(key string) bool {
	if kl.every == rate.Inf {
		return true
	}
	now := kl.now()

	kl.mu.Lock()
	defer kl.mu.Unlock()

	kl.sweep(now)
	e, ok := kl.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.every, kl.burst)}
		kl.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len は保持しているキーの数を返します。
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.limiters)
}

// sweep は expiresIn より長く使われていないキーを破棄します。呼び出し側でロックを保持すること。
func (kl *KeyedLimiter) sweep(now time.Time) {
	for k, e := range kl.limiters {
		if now.Sub(e.lastSeen) > kl.expiresIn {
			delete(kl.limiters, k)
		}
	}
}
