package sftpclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string
}

// UploadFile pushes a local file over SFTP. It is the fallback output
// destination when no blob storage connection string is configured.
func UploadFile(ctx context.Context, cfg Config, localPath, remoteFileName string) error {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return fmt.Errorf("sftpclient: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	sshCfg := &ssh.ClientConfig{
		User: cfg.User,
		Auth: []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		// TODO: replace with a known_hosts callback once the drop host is fixed
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	// ssh.Dial has no ctx variant; run it aside so cancel still works
	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return fmt.Errorf("sftpclient: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("sftpclient: dial %s: %w", addr, r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftpclient: new client: %w", err)
	}
	defer cli.Close()

	if err := cli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftpclient: mkdir %s: %w", cfg.RemoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftpclient: open %s: %w", localPath, err)
	}
	defer src.Close()

	remotePath := path.Join(cfg.RemoteDir, remoteFileName)
	dst, err := cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftpclient: create %s: %w", remotePath, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("sftpclient: copy to %s: %w", remotePath, err)
	}

	fmt.Printf("[sftp] uploaded %s (%d bytes)\n", remotePath, n)
	return nil
}
