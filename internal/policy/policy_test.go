package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const paddleTarget = "https://www.paddlepaddle.org.cn/documentation/docs/zh/develop/"

func TestPrefixRule_Correct(t *testing.T) {
	rule := PrefixRule{SplitKey: "api/", TargetURL: paddleTarget, Segment: "api/"}

	tests := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{
			name: "already canonical",
			in:   paddleTarget + "api/v1",
			want: paddleTarget + "api/v1",
		},
		{
			name: "other base is rewritten",
			in:   "https://other.example/docs/2.4/api/v1",
			want: paddleTarget + "api/" + "v1",
		},
		{
			name: "trailing path kept verbatim",
			in:   "https://www.paddlepaddle.org.cn/documentation/docs/zh/2.5/api/paddle/device/cuda/Event_cn.html",
			want: paddleTarget + "api/paddle/device/cuda/Event_cn.html",
		},
		{
			name: "split key missing",
			in:   "https://other.example/docs/paddle.html",
			err:  ErrSplitKeyMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rule.Correct(tt.in)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixRule_CanonicalWithoutSplitKey(t *testing.T) {
	// A URL equal to the target itself has no split key but is canonical.
	rule := PrefixRule{SplitKey: "api/", TargetURL: paddleTarget, Segment: "api/"}
	got, err := rule.Correct(paddleTarget)
	require.NoError(t, err)
	require.Equal(t, paddleTarget, got)
}

func TestVersionRule_Correct(t *testing.T) {
	rule := VersionRule{SplitKey: "docs/", TargetVersion: "stable"}

	tests := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{
			name: "target version unchanged",
			in:   "https://pytorch.org/docs/stable/x",
			want: "https://pytorch.org/docs/stable/x",
		},
		{
			name: "old version replaced",
			in:   "https://pytorch.org/docs/1.0/x",
			want: "https://pytorch.org/docs/stable/x",
		},
		{
			// The token also appears earlier in the host, so the first
			// occurrence there is replaced instead of the version segment.
			name: "substring replace hits the first occurrence",
			in:   "https://v2.example.org/docs/v2/torch.html",
			want: "https://stable.example.org/docs/v2/torch.html",
		},
		{
			name: "split key missing",
			in:   "https://pytorch.org/tutorials/x",
			err:  ErrSplitKeyMissing,
		},
		{
			name: "empty version segment",
			in:   "https://pytorch.org/docs//x",
			err:  ErrEmptyVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rule.Correct(tt.in)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVersionRule_Version(t *testing.T) {
	rule := VersionRule{SplitKey: "docs/", TargetVersion: "stable"}

	v, err := rule.Version("https://pytorch.org/docs/2.1")
	require.NoError(t, err)
	require.Equal(t, "2.1", v)

	v, err = rule.Version("https://pytorch.org/docs/1.13/generated/torch.cuda.Event.html#torch.cuda.Event")
	require.NoError(t, err)
	require.Equal(t, "1.13", v)
}

func TestRuleKinds(t *testing.T) {
	require.Equal(t, KindPrefix, PrefixRule{}.Kind())
	require.Equal(t, KindVersion, VersionRule{}.Kind())
}
