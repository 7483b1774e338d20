package netutil

import (
	"bytes"
	"net"
	"strings"
	"testing"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	ip, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		t.Fatal(err)
	}
	ipnet.IP = ip
	return ipnet
}

func TestMatchSubnet(t *testing.T) {
	addrs := []net.Addr{
		mustCIDR(t, "127.0.0.1/8"),
		mustCIDR(t, "fe80::1/64"),
		mustCIDR(t, "10.0.0.5/24"),
		mustCIDR(t, "192.168.1.23/24"),
	}

	if got := matchSubnet(addrs, net.ParseIP("192.168.1.1")); !got.Equal(net.ParseIP("192.168.1.23")) {
		t.Errorf("matchSubnet() = %v, want 192.168.1.23", got)
	}
	if got := matchSubnet(addrs, net.ParseIP("172.16.0.1")); got != nil {
		t.Errorf("matchSubnet() = %v, want nil", got)
	}
}

func TestBrowseURL(t *testing.T) {
	if got := BrowseURL(net.ParseIP("192.168.1.23"), "8080"); got != "http://192.168.1.23:8080/" {
		t.Errorf("BrowseURL() = %q", got)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "http://192.168.1.23:8080/")

	out := buf.String()
	if !strings.Contains(out, "http://192.168.1.23:8080/") {
		t.Errorf("banner missing url: %q", out)
	}
	if len(strings.Split(out, "\n")) < 10 {
		t.Errorf("banner missing QR code rows")
	}
}
