// internal/engine/cache.go
package engine

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"p3io/core/boulder"
	"p3io/internal/args"
)

// DefaultCacheSize is the entry count used when a size <= 0 is given.
const DefaultCacheSize = 4096

type cacheKey [32]byte

func thermoKey(op, s1, s2 string, c args.Conditions) cacheKey {
	return blake3.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%s\x00%+v", op, s1, s2, c)))
}

// CachedThermo memoizes successful results of another Thermo.
type CachedThermo struct {
	inner Thermo
	cache *lru.Cache[cacheKey, ThermoResult]
}

func NewCachedThermo(inner Thermo, size int) (*CachedThermo, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, ThermoResult](size)
	if err != nil {
		return nil, err
	}
	return &CachedThermo{inner: inner, cache: c}, nil
}

func (t *CachedThermo) do(k cacheKey, call func() (ThermoResult, error)) (ThermoResult, error) {
	if r, ok := t.cache.Get(k); ok {
		return r, nil
	}
	r, err := call()
	if err != nil {
		return r, err
	}
	t.cache.Add(k, r)
	return r, nil
}

func (t *CachedThermo) Tm(ctx context.Context, seq string, c args.Conditions) (float64, error) {
	r, err := t.do(thermoKey("tm", seq, "", c), func() (ThermoResult, error) {
		v, err := t.inner.Tm(ctx, seq, c)
		return ThermoResult{Found: true, Tm: v}, err
	})
	return r.Tm, err
}

func (t *CachedThermo) Hairpin(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error) {
	return t.do(thermoKey(calcHairpin, seq, "", c), func() (ThermoResult, error) { return t.inner.Hairpin(ctx, seq, c) })
}

func (t *CachedThermo) Homodimer(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error) {
	return t.do(thermoKey("homodimer", seq, "", c), func() (ThermoResult, error) { return t.inner.Homodimer(ctx, seq, c) })
}

func (t *CachedThermo) Heterodimer(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error) {
	return t.do(thermoKey(calcAny, seq1, seq2, c), func() (ThermoResult, error) { return t.inner.Heterodimer(ctx, seq1, seq2, c) })
}

func (t *CachedThermo) EndStability(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error) {
	return t.do(thermoKey(calcEnd1, seq1, seq2, c), func() (ThermoResult, error) { return t.inner.EndStability(ctx, seq1, seq2, c) })
}

// Len reports the number of cached results.
func (t *CachedThermo) Len() int { return t.cache.Len() }

// CachedDesigner memoizes successful designs keyed by the formatted
// input record, so identical requests in a batch run primer3 once.
type CachedDesigner struct {
	inner Designer
	codec *boulder.Codec
	cache *lru.Cache[cacheKey, *boulder.Record]
}

func NewCachedDesigner(inner Designer, codec *boulder.Codec, size int) (*CachedDesigner, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if codec == nil {
		codec = boulder.Default
	}
	c, err := lru.New[cacheKey, *boulder.Record](size)
	if err != nil {
		return nil, err
	}
	return &CachedDesigner{inner: inner, codec: codec, cache: c}, nil
}

func (d *CachedDesigner) Design(ctx context.Context, in *boulder.Record) (*boulder.Record, error) {
	data, err := d.codec.Format(in)
	if err != nil {
		return nil, err
	}
	k := cacheKey(blake3.Sum256(data))
	if r, ok := d.cache.Get(k); ok {
		return r.Clone(), nil
	}
	out, err := d.inner.Design(ctx, in)
	if err != nil {
		return out, err
	}
	d.cache.Add(k, out.Clone())
	return out, nil
}

func (d *CachedDesigner) Len() int { return d.cache.Len() }
