package sample_test

import (
	"context"
	"testing"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/export"
	"github.com/anoideaopen/mx/internal/sample"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestQueueDescriptor(t *testing.T) {
	e := export.New()
	name, err := e.Register(context.Background(), sample.NewQueue(2, 1))
	require.NoError(t, err)
	require.Equal(t, "mx.sample:type=Queue,name=jobs", name.String())

	d, err := e.Describe(name)
	require.NoError(t, err)
	require.Equal(t, "job queue", d.Description())

	for attr, access := range map[string]descriptor.Access{
		"Workers":   descriptor.AccessReadWrite,
		"Limit":     descriptor.AccessReadOnly,
		"Pending":   descriptor.AccessReadOnly,
		"Processed": descriptor.AccessReadOnly,
		"Paused":    descriptor.AccessReadWrite,
	} {
		a, err := d.Attribute(attr)
		require.NoError(t, err, attr)
		require.Equal(t, access, a.Access, attr)
	}

	require.Empty(t, d.OperationsNamed("Take"))
	push, err := d.OperationBySignature("Push(string)")
	require.NoError(t, err)
	require.Equal(t, "job", push.Params[0].Name)

	ctx := context.Background()
	_, err = e.InvokeEncoded(ctx, name, "Push", []string{"a"}, nil)
	require.NoError(t, err)
	_, err = e.InvokeEncoded(ctx, name, "Push", []string{"b"}, nil)
	require.ErrorIs(t, err, sample.ErrQueueFull)
}

func TestCache(t *testing.T) {
	c := sample.NewCache("c", 1)
	require.True(t, c.Put("a", "1"))
	require.False(t, c.Put("b", "2"))
	require.True(t, c.Put("a", "3"))

	v, ok := c.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "3", v)
	_, ok = c.Lookup("b")
	require.False(t, ok)
	require.InDelta(t, 0.5, c.GetHitRatio(), 1e-9)
	require.Equal(t, []string{"a"}, c.Keys())

	c.Clear()
	require.Zero(t, c.GetSize())
}

func TestLoggedServiceIsDescribedAsService(t *testing.T) {
	e := export.New()
	s := sample.NewService("svc:1")
	name, err := e.Register(context.Background(), sample.NewLoggedService(s, logrus.NewEntry(logrus.New())))
	require.NoError(t, err)

	d, err := e.Describe(name)
	require.NoError(t, err)
	require.Equal(t, "*sample.Service", d.TypeName())

	out, err := e.Invoke(context.Background(), name, "Restart", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "restarted svc:1", out)
	require.EqualValues(t, 1, s.GetRestarts())
}

func TestRuntimeNamesItself(t *testing.T) {
	e := export.New()
	name, err := e.Register(context.Background(), sample.Runtime{})
	require.NoError(t, err)
	require.Equal(t, "mx.sample:type=Runtime", name.String())

	v, err := e.Get(context.Background(), name, "GoVersion")
	require.NoError(t, err)
	require.NotEmpty(t, v)
}
