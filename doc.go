// SPDX-License-Identifier: MIT
// Package mcoptions is a Monte Carlo option-pricing engine: deterministic,
// reproducible path simulation under GBM, Black-76, SABR, Heston, and
// Merton jump-diffusion dynamics, variance reduction via antithetic pairing
// and control variates, American/Bermudan exercise via Longstaff-Schwartz
// least-squares regression, and closed-form analytical companions for every
// model it simulates.
//
// Determinism is load-bearing throughout: every pricing call threads a
// single xoshiro256** master generator (see package rng), and the parallel
// executor (see package exec) derives per-thread substreams from it via a
// 256-bit jump-ahead, so the same seed and the same thread count always
// reproduce the same price bit for bit. A different thread count splits the
// simulations over different substreams and so draws different numbers.
//
// A Context carries the parameters a pricing call needs beyond its contract
// arguments (simulation count, thread count, antithetic flag, model
// selector):
//
//	ctx := mcoptions.NewContext(
//		mcoptions.WithSimulations(200000),
//		mcoptions.WithThreads(8),
//		mcoptions.WithAntithetic(true),
//	)
//	price, err := mcoptions.EuropeanCall(ctx, 100, 105, 0.05, 0.2, 1.0)
//
// The supported instrument set spans European, American, Bermudan, Asian
// (arithmetic and geometric), barrier (all four knock-in/knock-out
// variants), lookback (floating and fixed strike), and digital (cash-or-
// nothing and asset-or-nothing) payoffs.
//
// Subpackages:
//
//	rng/      — xoshiro256** generator with jump-ahead substreams
//	models/   — GBM, Black-76, SABR, Heston, Merton path kernels
//	variance/ — antithetic pairing, control variates
//	lsm/      — Longstaff-Schwartz least-squares regression
//	payoff/   — pure payoff functions and path-dependent pricing drivers
//	analytic/ — closed-form companion pricers and validation references
//	exec/     — deterministic parallel simulation dispatcher
//	sobol/    — optional low-discrepancy quasi-random draw source
package mcoptions
