package host_client

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ExecCmd runs cmd in a new ssh session and returns its stdout.
// A failing command returns an error carrying its stderr.
func (client *HostClient) ExecCmd(cmd string) ([]byte, error) {
	var (
		err            error
		stdout, stderr bytes.Buffer
	)
	startTime := time.Now()
	logrus.Debugf("ExecCmd start. [client:%s,cmd:%q]", client, cmd)
	defer func() {
		cost := time.Now().Sub(startTime).Seconds()
		logrus.Debugf("ExecCmd end. [client:%s,cmd:%q,cost:%fs,stdout:%d bytes]", client, cmd, cost, stdout.Len())
	}()

	session, err := client.sshClient.NewSession()
	if err != nil {
		logrus.Errorf("sshClient.NewSession err. [err:%v,client:%s]", err, client)
		return nil, err
	}
	defer func() { _ = session.Close() }()

	session.Stdout = &stdout
	session.Stderr = &stderr
	err = session.Run(cmd)
	if err != nil {
		logrus.Errorf("session.Run err. [err:%v,client:%s,cmd:%q]", err, client, cmd)
		return stdout.Bytes(), fmt.Errorf("%s: %w: %s", cmd, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ExecCmds runs each command in order and stops at the first failure.
func (client *HostClient) ExecCmds(cmds []string) error {
	for _, cmd := range cmds {
		_, err := client.ExecCmd(cmd)
		if err != nil {
			return err
		}
	}
	return nil
}
