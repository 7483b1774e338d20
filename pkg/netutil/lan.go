package netutil

import (
	"fmt"
	"io"
	"net"

	"github.com/jackpal/gateway"
	"github.com/mdp/qrterminal/v3"
)

// 半块字符绘制二维码
const (
	blackWhite = "▄"
	blackBlack = " "
	whiteBlack = "▀"
	whiteWhite = "█"
)

// LocalIP 返回与默认网关处于同一子网的本机IPv4地址
func LocalIP() (net.IP, error) {
	gwIP, err := gateway.DiscoverGateway()
	if err != nil {
		return nil, fmt.Errorf("failed to discover gateway: %w", err)
	}

	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve network interfaces: %w", err)
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := matchSubnet(addrs, gwIP); ip != nil {
			return ip, nil
		}
	}

	return nil, fmt.Errorf("no local IPv4 address found in the same subnet as gateway %s", gwIP)
}

// matchSubnet 在地址列表中找出包含gw的全局单播IPv4地址
func matchSubnet(addrs []net.Addr, gw net.IP) net.IP {
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ipv4 := ipnet.IP.To4()
		if ipv4 == nil || !ipv4.IsGlobalUnicast() || ipv4.IsLoopback() {
			continue
		}
		if ipnet.Contains(gw) {
			return ipv4
		}
	}
	return nil
}

// BrowseURL 局域网访问地址
func BrowseURL(ip net.IP, port string) string {
	return fmt.Sprintf("http://%s/", net.JoinHostPort(ip.String(), port))
}

// PrintBanner 输出访问地址和终端二维码
func PrintBanner(w io.Writer, url string) {
	fmt.Fprintf(w, "\nBrowse from your LAN: %s\n", url)
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:          qrterminal.M,
		Writer:         w,
		HalfBlocks:     true,
		BlackChar:      blackBlack,
		WhiteBlackChar: whiteBlack,
		WhiteChar:      whiteWhite,
		BlackWhiteChar: blackWhite,
		QuietZone:      1,
	})
}
