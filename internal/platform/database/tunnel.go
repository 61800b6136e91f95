package database

import (
	"context"
	"net"

	"golang.org/x/crypto/ssh"
)

// SSHDialer opens database connections through an SSH tunnel, for
// deployments where mongod only listens on the database host's loopback
// interface.
type SSHDialer struct {
	client *ssh.Client
}

func NewSSHDialer(addr, user, password string) (*SSHDialer, error) {
	cfg := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			// Some hosts only offer keyboard-interactive; answer every
			// prompt with the configured password.
			ssh.KeyboardInteractive(func(name, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	client, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		return nil, err
	}
	return &SSHDialer{client: client}, nil
}

func (d *SSHDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return d.client.DialContext(ctx, network, address)
}

func (d *SSHDialer) Close() error {
	return d.client.Close()
}
