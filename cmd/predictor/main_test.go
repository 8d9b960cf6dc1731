package main

import (
	"context"
	"io"
	"testing"

	"stancewatch/internal/predictor"

	"github.com/stretchr/testify/require"
)

func TestEnqueueCmd_RejectsInvalidTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown type", args: []string{"--type", "player", "--target", "x"}, wantErr: predictor.ErrInvalidTargetType},
		{name: "club without target", args: []string{"--type", "club"}, wantErr: predictor.ErrMissingTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newEnqueueCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			err := cmd.ExecuteContext(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListCmd_Flags(t *testing.T) {
	cmd := newListCmd()

	require.NotNil(t, cmd.Flags().Lookup("target"))
	require.NotNil(t, cmd.Flags().Lookup("type"))
	require.Equal(t, []string{"ls"}, cmd.Aliases)
}
