package host_client

import (
	"net"
	"time"

	"github.com/pkg/sftp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// HostClient is an ssh/sftp session to the host that ran the performance test.
type HostClient struct {
	IpAddr   string
	Port     string
	User     string
	Password string
	Timeout  time.Duration

	sshClient  *ssh.Client
	sftpClient *sftp.Client
}

func NewHostClient(ipAddr, port, user, password string) (*HostClient, error) {
	client := &HostClient{
		IpAddr:   ipAddr,
		Port:     port,
		User:     user,
		Password: password,
		Timeout:  5 * time.Second,
	}
	if client.Port == "" {
		client.Port = "22"
	}

	err := client.open()
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (client *HostClient) String() string {
	return client.User + "@" + net.JoinHostPort(client.IpAddr, client.Port)
}

func (client *HostClient) sshConfig() *ssh.ClientConfig {
	config := &ssh.ClientConfig{
		Timeout:         client.Timeout,
		User:            client.User,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}
	config.Auth = []ssh.AuthMethod{ssh.Password(client.Password)}
	return config
}

func (client *HostClient) open() error {
	var (
		err error
	)
	addr := net.JoinHostPort(client.IpAddr, client.Port)
	client.sshClient, err = ssh.Dial("tcp", addr, client.sshConfig())
	if err != nil {
		logrus.Errorf("ssh.Dial err. [err:%v,client:%s]", err, client)
		return err
	}

	client.sftpClient, err = sftp.NewClient(client.sshClient, sftp.MaxPacket(1<<15))
	if err != nil {
		logrus.Errorf("sftp.NewClient err. [err:%v,client:%s]", err, client)
		_ = client.sshClient.Close()
		return err
	}

	return nil
}

func (client *HostClient) Close() error {
	var (
		err error
	)

	err = client.sftpClient.Close()
	if err != nil {
		logrus.Errorf("client.sftpClient.Close error [client:%s, err:%v]", client, err)
		return err
	}

	err = client.sshClient.Close()
	if err != nil {
		logrus.Errorf("client.sshClient.Close error [client:%s, err:%v]", client, err)
		return err
	}

	return nil
}
