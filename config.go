// Package weilpoly enumerates integer Weil polynomials of a fixed weight:
// monic integer polynomials whose complex roots all lie on the circle
// |z| = sqrt(q). NewStaticContext validates a configuration once; Enumerate
// and EnumerateParallel drive the search it describes.
package weilpoly

import (
	"math/big"

	"github.com/edgarcosta/weilpoly/internal/bigx"
	"github.com/edgarcosta/weilpoly/internal/search"
	"github.com/edgarcosta/weilpoly/internal/tables"
)

// Kind identifies why a StaticContext failed validation.
type Kind int

const (
	// DegreeTooSmall means d < 1.
	DegreeTooSmall Kind = iota
	// LeadZero means the required leading coefficient was 0.
	LeadZero
	// QZero means q < 1.
	QZero
	// ModlistLengthMismatch means len(modlist) != d+1.
	ModlistLengthMismatch
	// CofactorUnsupported means cofactorKind isn't one of 0..3.
	CofactorUnsupported
	// CofactorRequiresSquareQ means cofactorKind asked for a sqrt(q)
	// term (x+sqrt(q) or x-sqrt(q)) but q isn't a perfect square.
	CofactorRequiresSquareQ
)

func (k Kind) String() string {
	switch k {
	case DegreeTooSmall:
		return "DegreeTooSmall"
	case LeadZero:
		return "LeadZero"
	case QZero:
		return "QZero"
	case ModlistLengthMismatch:
		return "ModlistLengthMismatch"
	case CofactorUnsupported:
		return "CofactorUnsupported"
	case CofactorRequiresSquareQ:
		return "CofactorRequiresSquareQ"
	default:
		return "Unknown"
	}
}

// InvalidConfig reports a rejected StaticContext configuration.
type InvalidConfig struct {
	Kind Kind
	Msg  string
}

func (e *InvalidConfig) Error() string {
	return e.Msg
}

// CofactorOne, CofactorPlusSqrtQ, CofactorMinusSqrtQ and CofactorXSquaredMinusQ
// name the four cofactor kinds ps_static_init's switch recognizes: the
// constant 1, x+sqrt(q), x-sqrt(q), and x^2-q.
const (
	CofactorOne = iota
	CofactorPlusSqrtQ
	CofactorMinusSqrtQ
	CofactorXSquaredMinusQ
)

// StaticContext is the immutable, validated configuration shared by every
// branch of one enumeration. Build it with NewStaticContext.
type StaticContext struct {
	D         int
	Lead      int64
	Sign      int64
	Q         int64
	Modlist   []int64
	NodeLimit int64
	Q0        []int64

	sctx *search.Context
}

// NewStaticContext validates (d, lead, sign, q, cofactorKind, modlist,
// nodeLimit) and builds the static tables the search needs. q0, if
// non-nil, is the initial coefficient prefix (length d+1); pass nil for
// the standard all-zero prefix with pol[d] = lead.
func NewStaticContext(d int, lead, sign, q int64, cofactorKind int, modlist []int64, nodeLimit int64, q0 []int64) (*StaticContext, error) {
	if d < 1 {
		return nil, &InvalidConfig{Kind: DegreeTooSmall, Msg: "d must be at least 1"}
	}
	if lead == 0 {
		return nil, &InvalidConfig{Kind: LeadZero, Msg: "lead must be nonzero"}
	}
	if q < 1 {
		return nil, &InvalidConfig{Kind: QZero, Msg: "q must be at least 1"}
	}
	if len(modlist) != d+1 {
		return nil, &InvalidConfig{Kind: ModlistLengthMismatch, Msg: "modlist must have length d+1"}
	}
	if cofactorKind < CofactorOne || cofactorKind > CofactorXSquaredMinusQ {
		return nil, &InvalidConfig{Kind: CofactorUnsupported, Msg: "cofactorKind must be in 0..3"}
	}

	var sqrtQ *big.Int
	if cofactorKind == CofactorPlusSqrtQ || cofactorKind == CofactorMinusSqrtQ {
		qBig := big.NewInt(q)
		sqrtQ = bigx.IsqrtFloor(qBig)
		if new(big.Int).Mul(sqrtQ, sqrtQ).Cmp(qBig) != 0 {
			return nil, &InvalidConfig{Kind: CofactorRequiresSquareQ, Msg: "cofactor x+-sqrt(q) requires q to be a perfect square"}
		}
	}

	cofactor := make([]*big.Int, 3)
	for i := range cofactor {
		cofactor[i] = new(big.Int)
	}
	switch cofactorKind {
	case CofactorOne:
		cofactor[0].SetInt64(1)
	case CofactorPlusSqrtQ:
		cofactor[0].Set(sqrtQ)
		cofactor[1].SetInt64(1)
	case CofactorMinusSqrtQ:
		cofactor[0].Neg(sqrtQ)
		cofactor[1].SetInt64(1)
	case CofactorXSquaredMinusQ:
		cofactor[0].SetInt64(-q)
		cofactor[2].SetInt64(1)
	}

	var a, b *big.Int
	if q == 1 {
		a, b = big.NewInt(-2), big.NewInt(2)
	} else {
		a, b = big.NewInt(0), big.NewInt(4*q)
	}

	tb := tables.Build(d, lead, q, modlist)

	return &StaticContext{
		D:         d,
		Lead:      lead,
		Sign:      sign,
		Q:         q,
		Modlist:   modlist,
		NodeLimit: nodeLimit,
		Q0:        q0,
		sctx: &search.Context{
			Tables:    tb,
			Q:         q,
			A:         a,
			B:         b,
			Modlist:   modlist,
			NodeLimit: nodeLimit,
			Sign:      sign,
			Cofactor:  cofactor,
		},
	}, nil
}

// NewInitialState returns a fresh, un-descended search branch covering the
// whole configuration.
func (sc *StaticContext) NewInitialState() *search.DynamicState {
	return search.NewDynamicState(sc.D, sc.Lead, sc.Q0)
}
