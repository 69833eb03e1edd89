// Package websocket provides streaming prediction over WebSocket.
package websocket
