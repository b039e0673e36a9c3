// Command blegattd is a demo/inspection shell around the gatt package's
// ATT dispatcher: it builds a small attribute table, then either
// replays hex-encoded ATT frames from stdin/a file through it, prints
// the advertising data it would emit, or decodes a UUID string.
//
// It owns no radio; wiring real PDUs in and out of it is the
// transport's job, same as the library it demonstrates.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	gatt "github.com/nwise/blegatt"
)

var (
	serverMTU   string
	deviceName  string
	replayFile  string
	logLevelStr string
)

func main() {
	root := &cobra.Command{
		Use:   "blegattd",
		Short: "blegattd inspects and drives a gatt ATT server core",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl, err := log.ParseLevel(logLevelStr)
			if err != nil {
				fmt.Fprintln(os.Stderr, "blegattd:", err)
				os.Exit(1)
			}
			log.SetLevel(lvl)
		},
	}

	root.PersistentFlags().StringVarP(&serverMTU, "server-mtu", "m", "185",
		"ATT server MTU to advertise during negotiation")
	root.PersistentFlags().StringVarP(&deviceName, "name", "n", "blegattd",
		"device name exposed via the Generic Access Service")
	root.PersistentFlags().StringVarP(&logLevelStr, "loglevel", "l", "info",
		"log level (trace, debug, info, warn, error)")

	root.AddCommand(serveCmd())
	root.AddCommand(advertiseDataCmd())
	root.AddCommand(uuidCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newDemoServer() *gatt.Server {
	mtu := cast.ToUint16(serverMTU)
	srv := gatt.NewServer(gatt.Name(deviceName), gatt.ServerMTU(mtu))

	info := srv.AddService(gatt.UUID16(0x180A)) // Device Information
	info.AddCharacteristic(gatt.UUID16(0x2A29)).SetValue([]byte("blegattd"))

	counter := byte(0)
	demo := srv.AddService(gatt.MustParseUUID("7b1dc0c0-ba26-11ee-9a41-0800200c9a66"))
	demo.AddCharacteristic(gatt.MustParseUUID("7b1dc3a4-ba26-11ee-9a41-0800200c9a66")).
		HandleReadFunc(func(resp gatt.ReadResponseWriter, req *gatt.ReadRequest) {
			counter++
			resp.Write([]byte{counter})
		})

	return srv
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "replay hex-encoded ATT request frames, one per line, and print the responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := newDemoServer()
			conn := gatt.NewConnectionData(cast.ToUint16(serverMTU))
			srv.Attach(conn)

			in, err := replaySource()
			if err != nil {
				return err
			}
			defer in.Close()

			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				req, err := hex.DecodeString(line)
				if err != nil {
					log.WithError(err).Warn("blegattd: skipping unparsable line")
					continue
				}
				out := make([]byte, conn.NegotiatedMTU())
				n := srv.L2CAPInput(req, out, conn)
				fmt.Println(hex.EncodeToString(out[:n]))
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&replayFile, "replay-file", "",
		"hex frames to replay instead of stdin (default ~/.blegattd/replay.hex if present)")
	return cmd
}

func replaySource() (*os.File, error) {
	if replayFile == "" {
		home, err := homedir.Dir()
		if err == nil {
			replayFile = home + "/.blegattd/replay.hex"
		}
	}
	if replayFile == "" {
		return os.Stdin, nil
	}
	f, err := os.Open(replayFile)
	if err != nil {
		return os.Stdin, nil //nolint:nilerr // fall back to stdin when no replay file exists
	}
	return f, nil
}

func advertiseDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advertise-data",
		Short: "print the advertising data the demo server would emit",
		Run: func(cmd *cobra.Command, args []string) {
			srv := newDemoServer()
			buf := make([]byte, 31)
			n := srv.AdvertisingData(buf)
			fmt.Println(hex.EncodeToString(buf[:n]))
		},
	}
}

func uuidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uuid <uuid-string>",
		Short: "parse a UUID string and print its wire bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := gatt.ParseUUID(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  (%d bytes on the wire: %x)\n", u, u.Len(), u.Bytes())
			return nil
		},
	}
	return cmd
}
