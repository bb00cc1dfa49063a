package host_client

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (client *HostClient) Download(dstPath string, srcPath string) error {
	startTime := time.Now()
	logrus.Debugf("Download start. client:%s, srcPath:%s", client, srcPath)
	defer func() {
		cost := time.Now().Sub(startTime).Seconds()
		logrus.Debugf("Download end.   client:%s, srcPath:%s, cost:%f", client, srcPath, cost)
	}()

	srcFile, err := client.sftpClient.Open(srcPath)
	if err != nil {
		logrus.Errorf("sftpClient.Open err. [err:%v,client:%s,srcPath:%s]", err, client, srcPath)
		return err
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		logrus.Errorf("os.Create err. [err:%v,dstPath:%s]", err, dstPath)
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		logrus.Errorf("io.Copy err. [err:%v,dstPath:%s, srcFile:%s]", err, dstPath, srcPath)
		return err
	}

	return nil
}

// ResultFiles lists the remote files in dir ending with suffix.
func (client *HostClient) ResultFiles(dir string, suffix string) ([]string, error) {
	fileInfos, err := client.sftpClient.ReadDir(dir)
	if err != nil {
		logrus.Errorf("sftpClient.ReadDir err. [err:%v,client:%s,dir:%s]", err, client, dir)
		return nil, err
	}

	var res []string
	for _, fileInfo := range fileInfos {
		if fileInfo.IsDir() || !strings.HasSuffix(fileInfo.Name(), suffix) {
			continue
		}
		res = append(res, path.Join(dir, fileInfo.Name()))
	}
	return res, nil
}

// DownloadToDir copies the remote files into dstDir and returns the local paths.
func (client *HostClient) DownloadToDir(dstDir string, srcPaths []string) ([]string, error) {
	err := os.MkdirAll(dstDir, 0755)
	if err != nil {
		logrus.Errorf("os.MkdirAll err. [err:%v,dstDir:%s]", err, dstDir)
		return nil, err
	}

	var res []string
	for _, srcPath := range srcPaths {
		dstPath := filepath.Join(dstDir, path.Base(srcPath))
		err = client.Download(dstPath, srcPath)
		if err != nil {
			return nil, err
		}
		res = append(res, dstPath)
	}
	return res, nil
}
