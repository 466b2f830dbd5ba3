package models

import "testing"

func TestLocationString(t *testing.T) {
	cases := []struct {
		loc  Location
		want string
	}{
		{Location{BasePath: "/getting-started"}, "/getting-started"},
		{Location{BasePath: "/principles", Fragment: "#simple-is-not-easy"}, "/principles#simple-is-not-easy"},
		{Location{BasePath: "/principles", Fragment: "no-nulls"}, "/principles#no-nulls"},
		{Location{BasePath: "/principles", Fragment: "#"}, "/principles"},
	}
	for _, c := range cases {
		if got := c.loc.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.loc, got, c.want)
		}
	}
}

func TestNewAnalyticsEvent(t *testing.T) {
	ev := NewAnalyticsEvent(Location{BasePath: "/principles", Fragment: "#no-nulls"})
	if ev.Path != "/principles#no-nulls" {
		t.Errorf("path = %q", ev.Path)
	}
}
