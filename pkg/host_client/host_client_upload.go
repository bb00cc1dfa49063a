package host_client

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func (client *HostClient) Upload(dstPath string, srcPath string) error {
	fileInfo, err := client.sftpClient.Stat(dstPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Errorf("sftpClient.Stat err. [err:%v,client:%s]", err, client)
		return err
	}

	if err == nil {
		if fileInfo.IsDir() {
			srcPathFileInfo, err := os.Stat(srcPath)
			if err != nil {
				logrus.Errorf("os.Stat err. [err:%v,srcPath:%s]", err, srcPath)
				return err
			}
			dstPath += "/" + srcPathFileInfo.Name()
		} else {
			err = client.sftpClient.Remove(dstPath)
			if err != nil {
				logrus.Errorf("sftp.Remove err. [err:%v,client:%s]", err, client)
				return err
			}
		}
	}

	dstFile, err := client.sftpClient.Create(dstPath)
	if err != nil {
		logrus.Errorf("sftpClient.Create err. [err:%v,client:%s,srcPath:%s,dstPath:%s]", err, client, srcPath, dstPath)
		return err
	}
	defer func() { _ = dstFile.Close() }()

	srcFile, err := os.Open(srcPath)
	if err != nil {
		logrus.Errorf("os.Open err. [err:%v,srcPath:%s]", err, srcPath)
		return err
	}
	defer func() { _ = srcFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		logrus.Errorf("io.Copy err. [err:%v,dstPath:%s, srcFile:%s]", err, dstPath, srcPath)
		return err
	}

	return nil
}
