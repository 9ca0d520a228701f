package indicator

import "testing"

func TestPolicyShouldRender(t *testing.T) {
	wide := LayoutContext{Output: "DP-1", Width: 2560, Height: 1440, Wide: true}
	compact := LayoutContext{Output: "eDP-1", Width: 1024, Height: 768}

	landscapePrefs := &Preferences{AllowLandscape: true, AllowPortrait: false}
	portraitPrefs := &Preferences{AllowLandscape: false, AllowPortrait: true}

	testCases := []struct {
		name      string
		ctx       LayoutContext
		hint      Size
		prefs     *Preferences
		landscape bool
		want      bool
	}{
		{"compact always renders", compact, Size{}, portraitPrefs, true, true},
		{"nil prefs fail open", wide, Size{}, nil, true, true},
		{"landscape hint allowed", wide, Size{Width: 2560, Height: 1440}, landscapePrefs, false, true},
		{"landscape hint denied", wide, Size{Width: 2560, Height: 1440}, portraitPrefs, false, false},
		{"portrait hint allowed", wide, Size{Width: 1440, Height: 2560}, portraitPrefs, true, true},
		{"portrait hint denied", wide, Size{Width: 1440, Height: 2560}, landscapePrefs, true, false},
		{"no hint falls back to ambient landscape", wide, Size{}, landscapePrefs, true, true},
		{"no hint falls back to ambient portrait", wide, Size{}, landscapePrefs, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			landscape := tc.landscape
			p := NewPolicy(func() bool { return landscape })
			if got := p.ShouldRender(tc.ctx, tc.hint, tc.prefs); got != tc.want {
				t.Errorf("ShouldRender(%+v, %+v, %+v) = %v, want %v", tc.ctx, tc.hint, tc.prefs, got, tc.want)
			}
		})
	}
}

func TestPolicyNilOrientationQuery(t *testing.T) {
	p := NewPolicy(nil)
	ctx := LayoutContext{Output: "DP-1", Width: 2560, Height: 1440, Wide: true}
	prefs := &Preferences{AllowLandscape: false, AllowPortrait: true}

	// Without an ambient query the policy treats the output as portrait.
	if !p.ShouldRender(ctx, Size{}, prefs) {
		t.Fatal("nil orientation query should fall back to portrait")
	}
}
