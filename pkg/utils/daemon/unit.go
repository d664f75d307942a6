package daemon

import (
	"fmt"
	"strings"
)

var (
	unitPath = "/etc/systemd/system/segbar.service"
)

const unitTemplate = `[Unit]
Description=segbar segmented battery level daemon
After=multi-user.target

[Service]
Type=simple
ExecStart=/path/to/segbar daemon --config /path/to/config --daemon-socket /path/to/socket
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// Unit renders the systemd unit running exePath as the daemon.
func Unit(exePath, configPath, socketPath string) (string, error) {
	for name, v := range map[string]string{"executable": exePath, "config": configPath, "socket": socketPath} {
		if v == "" || strings.ContainsAny(v, " \n\t\"'") {
			return "", fmt.Errorf("unsupported %s path %q", name, v)
		}
	}

	return strings.NewReplacer(
		"/path/to/segbar", exePath,
		"/path/to/config", configPath,
		"/path/to/socket", socketPath,
	).Replace(unitTemplate), nil
}
