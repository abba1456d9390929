package weilpoly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStaticContextRejectsDegreeTooSmall(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(0, 1, 1, 1, CofactorOne, []int64{1}, -1, nil)
	if a.Error(err) {
		a.Equal(DegreeTooSmall, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextRejectsLeadZero(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(1, 0, 1, 1, CofactorOne, []int64{1, 1}, -1, nil)
	if a.Error(err) {
		a.Equal(LeadZero, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextRejectsQZero(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(1, 1, 1, 0, CofactorOne, []int64{1, 1}, -1, nil)
	if a.Error(err) {
		a.Equal(QZero, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextRejectsModlistLengthMismatch(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(1, 1, 1, 1, CofactorOne, []int64{1}, -1, nil)
	if a.Error(err) {
		a.Equal(ModlistLengthMismatch, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextRejectsCofactorUnsupported(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(1, 1, 1, 1, 4, []int64{1, 1}, -1, nil)
	if a.Error(err) {
		a.Equal(CofactorUnsupported, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextRejectsCofactorRequiresSquareQ(t *testing.T) {
	a := assert.New(t)
	_, err := NewStaticContext(1, 1, 1, 2, CofactorPlusSqrtQ, []int64{1, 1}, -1, nil)
	if a.Error(err) {
		a.Equal(CofactorRequiresSquareQ, err.(*InvalidConfig).Kind)
	}
}

func TestNewStaticContextAcceptsSqrtQCofactorWhenQIsSquare(t *testing.T) {
	a := assert.New(t)
	sc, err := NewStaticContext(1, 1, 1, 4, CofactorPlusSqrtQ, []int64{1, 1}, -1, nil)
	if a.NoError(err) {
		a.Equal(int64(2), sc.sctx.Cofactor[0].Int64())
		a.Equal(int64(1), sc.sctx.Cofactor[1].Int64())
	}
}

func TestNewStaticContextEndpointsDependOnQ(t *testing.T) {
	a := assert.New(t)

	sc1, err := NewStaticContext(1, 1, 1, 1, CofactorOne, []int64{1, 1}, -1, nil)
	a.NoError(err)
	a.Equal(int64(-2), sc1.sctx.A.Int64())
	a.Equal(int64(2), sc1.sctx.B.Int64())

	sc3, err := NewStaticContext(1, 1, 1, 3, CofactorOne, []int64{1, 1}, -1, nil)
	a.NoError(err)
	a.Equal(int64(0), sc3.sctx.A.Int64())
	a.Equal(int64(12), sc3.sctx.B.Int64())
}
