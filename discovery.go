package airplay

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// Service, ağda bulunan bir AirPlay alıcısıdır.
type Service struct {
	Hostname string // IP adresi
	Port     int    // HTTP portu
	Name     string // Kullanıcıya gösterilen ad
}

// NewClient, servis için bir Client oluşturur. Name, WithName ile geçilir.
func (s Service) NewClient(options ...ClientOption) *Client {
	opts := append([]ClientOption{WithName(s.Name)}, options...)
	return NewClient(s.Hostname, s.Port, opts...)
}

// String, servisi "ad (host:port)" olarak gösterir.
func (s Service) String() string {
	return fmt.Sprintf("%s (%s:%d)", s.Name, s.Hostname, s.Port)
}

// Search, multicast DNS ile _airplay._tcp servislerini timeout süresince arar.
// Aynı ada sahip yanıtlar bir kez listelenir.
//
//	services, err := airplay.Search(ctx, time.Second)
//	for _, s := range services {
//	    fmt.Println(s)
//	}
func Search(ctx context.Context, timeout time.Duration) ([]Service, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(ServiceType)
	params.Timeout = timeout
	params.Entries = entries
	params.Logger = log.New(io.Discard, "", 0)

	var services []Service
	seen := make(map[string]bool)
	collected := make(chan struct{})

	go func() {
		defer close(collected)
		for entry := range entries {
			svc, ok := serviceFromEntry(entry)
			if !ok || seen[entry.Name] {
				continue
			}
			seen[entry.Name] = true
			services = append(services, svc)
		}
	}()

	err := mdns.QueryContext(ctx, params)
	close(entries)
	<-collected

	if err != nil {
		return services, fmt.Errorf("mDNS araması başarısız: %w", err)
	}
	return services, nil
}

// serviceFromEntry, mDNS kaydını Service'e çevirir. IPv4 adresi tercih edilir.
func serviceFromEntry(entry *mdns.ServiceEntry) (Service, bool) {
	var host string
	switch {
	case entry.AddrV4 != nil:
		host = entry.AddrV4.String()
	case entry.AddrV6 != nil:
		host = entry.AddrV6.String()
	default:
		return Service{}, false
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return Service{
		Hostname: host,
		Port:     port,
		Name:     instanceName(entry.Name),
	}, true
}

// instanceName, "Salon\ TV._airplay._tcp.local." gibi bir kayıt adından
// servis son ekini ve DNS kaçışlarını temizler.
func instanceName(full string) string {
	name := full
	if i := strings.Index(name, "."+ServiceType); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, `\032`, " ")
	name = strings.ReplaceAll(name, `\ `, " ")
	return name
}
