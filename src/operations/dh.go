// Package operations contains the demo drivers named in spec.md §1 and §6:
// the (Kappa+1)-user multipartite Diffie-Hellman exchange and the
// sequential product/extract demo. Per spec.md, these are "external
// collaborators, referenced only at their interface" -- they call the mm
// package's public API and hold no cryptographic logic of their own, the
// same cmd/operations split the teacher uses for its file-format commands.
package operations

import (
	"bytes"
	"fmt"
	"time"

	"cltmm/src/mm"
	"cltmm/src/params"
	"cltmm/src/rng"
)

// DHOptions configures the multipartite Diffie-Hellman demo.
type DHOptions struct {
	Instantiation string // one of Small/Medium/Large/Extra/Toy
	Users         int    // number of participants; must be <= Kappa+1. 0 -> Kappa+1
	Progress      func(stage string)
}

// DHUserResult captures one user's contribution and derived key.
type DHUserResult struct {
	Level0Degree int
	Level1Degree int
	FinalDegree  int
	SessionKey   []byte
}

// DHResult is the outcome of running the multipartite exchange end to end.
type DHResult struct {
	Instantiation string
	Users         []DHUserResult
	KeygenTime    time.Duration
	ExchangeTime  time.Duration
	ProductTime   time.Duration
	AllAgree      bool
}

// RunDH drives the (Kappa+1)-user multipartite non-interactive key exchange
// of original_source/main.cpp: each user samples a secret level-0 encoding,
// publishes a rerandomized level-1 encoding of it times y, and every user
// multiplies their own level-0 value by everyone else's level-1
// contribution, then by y until the product reaches level Kappa (with
// Kappa+1 users no extra factor is needed), and extracts a session key. All
// users must agree.
func RunDH(opts DHOptions) (*DHResult, error) {
	p, err := params.Load(opts.Instantiation)
	if err != nil {
		return nil, err
	}
	users := opts.Users
	if users == 0 {
		users = p.Kappa + 1
	}
	if users > p.Kappa+1 {
		return nil, fmt.Errorf("operations: %d users exceeds Kappa+1 (%d)", users, p.Kappa+1)
	}

	report := func(stage string) {
		if opts.Progress != nil {
			opts.Progress(stage)
		}
	}

	src := rng.New()

	t0 := time.Now()
	key, err := mm.NewKey(p, src, report)
	if err != nil {
		return nil, fmt.Errorf("operations: key setup: %w", err)
	}
	keygenTime := time.Since(t0)

	y := key.Y()

	t1 := time.Now()
	l0 := make([]mm.Encoding, users)
	l1 := make([]mm.Encoding, users)
	for j := 0; j < users; j++ {
		bits := make([]bool, p.Ell)
		for i := range bits {
			v, err := src.Bits(1)
			if err != nil {
				return nil, err
			}
			bits[i] = v.Sign() != 0
		}
		enc, err := key.EncodePublic(bits)
		if err != nil {
			return nil, fmt.Errorf("operations: user %d: %w", j, err)
		}
		l0[j] = enc

		c := enc.Mul(y)
		rr, err := key.Rerandomize(c, src)
		if err != nil {
			return nil, fmt.Errorf("operations: user %d rerandomize: %w", j, err)
		}
		l1[j] = rr
		report(fmt.Sprintf("user %d sampled and rerandomized", j))
	}
	exchangeTime := time.Since(t1)

	t2 := time.Now()
	finalKeys := make([]mm.Encoding, users)
	for j := 0; j < users; j++ {
		acc := l0[j]
		for i := 0; i < users; i++ {
			if i == j {
				continue
			}
			acc = acc.Mul(l1[i])
		}
		for d := acc.Degree(); d < p.Kappa; d++ {
			acc = acc.Mul(y)
		}
		finalKeys[j] = acc
	}
	productTime := time.Since(t2)

	results := make([]DHUserResult, users)
	agree := true
	var first []byte
	for j := 0; j < users; j++ {
		sk := key.DeriveSessionKey(finalKeys[j])
		skBytes := sk.Bytes()
		results[j] = DHUserResult{
			Level0Degree: l0[j].Degree(),
			Level1Degree: l1[j].Degree(),
			FinalDegree:  finalKeys[j].Degree(),
			SessionKey:   skBytes,
		}
		if j == 0 {
			first = skBytes
		} else if !bytes.Equal(first, skBytes) {
			agree = false
		}
	}

	return &DHResult{
		Instantiation: p.Name,
		Users:         results,
		KeygenTime:    keygenTime,
		ExchangeTime:  exchangeTime,
		ProductTime:   productTime,
		AllAgree:      agree,
	}, nil
}
