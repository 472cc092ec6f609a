package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching players to tables
type PitBoss struct {
	hosts      map[string]*Host
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		hosts:      make(map[string]*Host),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			host, found := p.hosts[client.table.UUID]
			if !found {
				newHost, err := NewHost(p, client.table)
				if err != nil {
					logrus.WithError(err).WithField("uuid", client.table.UUID).Error("could not open table")
					client.Close <- "table could not be opened"
					continue
				}

				newHost.StartShift()
				p.hosts[client.table.UUID] = newHost
				host = newHost
			}

			host.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			host, found := p.hosts[client.table.UUID]
			if !found {
				logrus.WithField("uuid", client.table.UUID).WithField("type", "exception").Error("table not found")
				continue
			}

			if host.RemoveClient(client) {
				host.EndShift()
				delete(p.hosts, client.table.UUID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
