package jhu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
)

const defaultTimeout = 30 * time.Second

type httpSource struct {
	URL    string
	client *http.Client
}

func (s httpSource) Fetch(ctx context.Context, metric schema.Metric) (io.ReadCloser, error) {
	url := strings.TrimSuffix(s.URL, "/") + "/" + FileName(metric)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	resp, err := s.client.Do(req)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "error": err}).Error("get jhu time series")
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "status": resp.StatusCode}).Error("get jhu time series")
		return nil, fmt.Errorf("%w: %s %d", ErrUnexpectedStatus, url, resp.StatusCode)
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "url": url}).Debug("downloaded jhu time series")
	return resp.Body, nil
}

// NewHTTPSource - jhu source reading the raw files of a CSSE time series directory url
func NewHTTPSource(url string, client *http.Client) Source {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &httpSource{
		URL:    url,
		client: client,
	}
}
