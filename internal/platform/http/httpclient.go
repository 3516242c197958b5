// Package http は外部プロバイダ呼び出し用のHTTPクライアント構築を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は上流API（Finnhub / Yahoo Finance）呼び出し用のHTTPクライアントを返します。
// http.DefaultClientは全体タイムアウトを持たないため使用しません。
//
// 接続確立とTLSハンドシェイクにはリクエスト全体のタイムアウトより短い上限を課し、
// 上流が落ちている場合に早く失敗させます。呼び出し先はプロバイダごとに単一ホストの
// ため、ホストあたりのアイドル接続数も制限します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
