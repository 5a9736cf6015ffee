// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"
	"fmt"
	"sync"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/luxfi/multipool/num"
	"github.com/luxfi/multipool/pricing"
)

// assetKey hashes a pool/asset address pair into a fixed-size map key, the
// same way the teacher precompile package keys its on-chain storage slots.
func assetKey(pool, asset string) [32]byte {
	h := blake3.New()
	h.Write([]byte(pool))
	h.Write([]byte{0})
	h.Write([]byte(asset))
	var key [32]byte
	h.Digest().Read(key[:])
	return key
}

// StubResult is the transaction result StubAdapter returns: it just echoes
// back what it was asked to submit, for tests that assert on the resolved
// parameters rather than on a real chain's receipt. Exactly one of
// MintBurnParams/SwapParams is populated, matching which Transact* method
// produced it.
type StubResult struct {
	Kind           string
	Router         string
	MintBurnParams MintBurnTxnParams
	SwapParams     SwapTxnParams
}

// StubAdapter is an in-memory Adapter for tests: it holds each seeded
// pool's context, supply and assets directly rather than talking to a chain.
type StubAdapter struct {
	mu sync.RWMutex

	logger       *zap.Logger
	contexts     map[string]pricing.MpContext
	totalSupply  map[string]num.Num
	assets       map[[32]byte]pricing.MpAsset
	currentBlock num.Num
}

// NewStubAdapter returns an empty StubAdapter. Use SetContext/SetAsset to
// seed it before configuring a Builder against it.
func NewStubAdapter() *StubAdapter {
	return &StubAdapter{
		logger:      zap.NewNop(),
		contexts:    make(map[string]pricing.MpContext),
		totalSupply: make(map[string]num.Num),
		assets:      make(map[[32]byte]pricing.MpAsset),
	}
}

// WithLogger replaces the stub's logger, which otherwise discards every
// entry. Tests that want to assert on submitted transactions can pass a
// zaptest logger here.
func (s *StubAdapter) WithLogger(logger *zap.Logger) *StubAdapter {
	s.logger = logger
	return s
}

// SetContext seeds the pricing context for a pool.
func (s *StubAdapter) SetContext(pool string, ctx pricing.MpContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[pool] = ctx
}

// SetTotalSupply seeds a pool's outstanding share count.
func (s *StubAdapter) SetTotalSupply(pool string, supply num.Num) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalSupply[pool] = supply
}

// SetAsset seeds a pool/asset pair's state.
func (s *StubAdapter) SetAsset(pool, asset string, a pricing.MpAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[assetKey(pool, asset)] = a
}

// SetCurrentBlock sets the block GetCurrentBlock reports.
func (s *StubAdapter) SetCurrentBlock(block num.Num) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentBlock = block
}

func (s *StubAdapter) GetTradingContext(_ context.Context, pool string) (pricing.MpContext, error) {
	return s.getContext(pool)
}

func (s *StubAdapter) GetMintContext(_ context.Context, pool string) (pricing.MpContext, error) {
	return s.getContext(pool)
}

func (s *StubAdapter) GetBurnContext(_ context.Context, pool string) (pricing.MpContext, error) {
	return s.getContext(pool)
}

func (s *StubAdapter) getContext(pool string) (pricing.MpContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.contexts[pool]
	if !ok {
		return pricing.MpContext{}, fmt.Errorf("action: unknown pool %q", pool)
	}
	return ctx, nil
}

func (s *StubAdapter) GetTotalSupply(_ context.Context, pool string) (num.Num, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	supply, ok := s.totalSupply[pool]
	if !ok {
		return num.Zero, fmt.Errorf("action: unknown pool %q", pool)
	}
	return supply, nil
}

func (s *StubAdapter) GetAsset(_ context.Context, pool, asset string) (pricing.MpAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[assetKey(pool, asset)]
	if !ok {
		return pricing.MpAsset{}, fmt.Errorf("action: unknown asset %q in pool %q", asset, pool)
	}
	return a, nil
}

func (s *StubAdapter) GetCurrentBlock(_ context.Context) num.Num {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBlock
}

func (s *StubAdapter) TransactMint(_ context.Context, router string, params MintBurnTxnParams) (StubResult, error) {
	s.logger.Info("transact mint", zap.String("router", router), zap.String("asset", params.AssetAddress))
	return StubResult{Kind: "mint", Router: router, MintBurnParams: params}, nil
}

func (s *StubAdapter) TransactMintReversed(_ context.Context, router string, params MintBurnTxnParams) (StubResult, error) {
	s.logger.Info("transact mint reversed", zap.String("router", router), zap.String("asset", params.AssetAddress))
	return StubResult{Kind: "mint_reversed", Router: router, MintBurnParams: params}, nil
}

func (s *StubAdapter) TransactBurn(_ context.Context, router string, params MintBurnTxnParams) (StubResult, error) {
	s.logger.Info("transact burn", zap.String("router", router), zap.String("asset", params.AssetAddress))
	return StubResult{Kind: "burn", Router: router, MintBurnParams: params}, nil
}

func (s *StubAdapter) TransactBurnReversed(_ context.Context, router string, params MintBurnTxnParams) (StubResult, error) {
	s.logger.Info("transact burn reversed", zap.String("router", router), zap.String("asset", params.AssetAddress))
	return StubResult{Kind: "burn_reversed", Router: router, MintBurnParams: params}, nil
}

func (s *StubAdapter) TransactSwap(_ context.Context, router string, params SwapTxnParams) (StubResult, error) {
	s.logger.Info("transact swap", zap.String("router", router),
		zap.String("asset_in", params.AssetInAddress), zap.String("asset_out", params.AssetOutAddress))
	return StubResult{Kind: "swap", Router: router, SwapParams: params}, nil
}

func (s *StubAdapter) TransactSwapReversed(_ context.Context, router string, params SwapTxnParams) (StubResult, error) {
	s.logger.Info("transact swap reversed", zap.String("router", router),
		zap.String("asset_in", params.AssetInAddress), zap.String("asset_out", params.AssetOutAddress))
	return StubResult{Kind: "swap_reversed", Router: router, SwapParams: params}, nil
}
