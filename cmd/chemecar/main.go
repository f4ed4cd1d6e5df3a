// Command chemecar is the run controller for a chemical-reaction-powered
// car: it checks the power rails, calibrates the optical sensor, starts
// the stir, and then polls the start switch and the reaction-progress
// signal until the visible endpoint halts the vehicle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/actuate"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/adc"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/diag"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/gpio"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/logic"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/status"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/telemetry"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/web"
)

// Indicator flash sequence run once at startup, before the control loop.
const (
	flashCount    = 3
	flashInterval = 150 * time.Millisecond
)

type options struct {
	poll       time.Duration
	calSamples int
	calDelay   time.Duration
	stirSpeed  int
	debug      string
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	spiPort    string
	serialPort string
	pins       gpio.Pins
}

func main() {
	var opts options
	flag.DurationVar(&opts.poll, "poll", 20*time.Millisecond, "control loop interval")
	flag.IntVar(&opts.calSamples, "cal-samples", 10, "number of light calibration samples")
	flag.DurationVar(&opts.calDelay, "cal-delay", 100*time.Millisecond, "delay between calibration samples")
	flag.IntVar(&opts.stirSpeed, "stir", 60, "stir servo speed (0-100)")
	flag.StringVar(&opts.debug, "debug", "all", "diagnostic verbosity (none, light, voltage, timing, all)")
	flag.StringVar(&opts.broker, "broker", "tcp://192.168.4.1:1883", `MQTT broker address ("off" disables telemetry)`)
	flag.DurationVar(&opts.heartbeat, "heartbeat", time.Minute, "telemetry heartbeat interval (0 to disable)")
	flag.StringVar(&opts.httpAddr, "http", ":8080", "HTTP status address (empty to disable)")
	flag.StringVar(&opts.spiPort, "spi", "", "SPI port for the ADC (empty selects the first bus)")
	flag.StringVar(&opts.serialPort, "serial", "/dev/ttyACM0", "serial port for the servo controller")
	flag.IntVar(&opts.pins.Switch, "pin-switch", gpio.DefaultPinSwitch, "BCM pin for the start switch")
	flag.IntVar(&opts.pins.BatteryLED, "pin-battery-led", gpio.DefaultPinBatteryLED, "BCM pin for the battery indicator")
	flag.IntVar(&opts.pins.FuelCellLED, "pin-fuelcell-led", gpio.DefaultPinFuelCellLED, "BCM pin for the fuel-cell indicator")
	flag.IntVar(&opts.pins.SensorPower, "pin-sensor-power", gpio.DefaultPinSensorPower, "BCM pin for the optical-sensor power rail")
	flag.IntVar(&opts.pins.DriveRail, "pin-drive-rail", gpio.DefaultPinDriveRail, "BCM pin for the drive-power rail")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	level, err := diag.ParseLevel(opts.debug)
	if err != nil {
		return err
	}
	diag.SetLevel(level)

	adcReader, err := adc.NewMCP3008(opts.spiPort)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer adcReader.Close()

	panel, err := gpio.NewRealPanel(opts.pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer panel.Close()

	drive, err := actuate.NewMaestro(opts.serialPort, panel.SetDriveRail)
	if err != nil {
		return fmt.Errorf("init servo controller: %w", err)
	}
	defer drive.Close()

	broker := opts.broker
	if broker == "off" {
		broker = ""
	}
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      opts.poll.Milliseconds(),
		CalSamples:  opts.calSamples,
		CalDelayMs:  opts.calDelay.Milliseconds(),
		StirSpeed:   opts.stirSpeed,
		HeartbeatMs: opts.heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    opts.httpAddr,
	})

	// Blocking setup: rail checks, indicator flash, calibration, stir.
	machine, err := initialize(adcReader, panel, drive, tracker, initConfig{
		calSamples:    opts.calSamples,
		calDelay:      opts.calDelay,
		stirSpeed:     opts.stirSpeed,
		flashCount:    flashCount,
		flashInterval: flashInterval,
	}, time.Sleep)
	if err != nil {
		return err
	}

	var publisher telemetry.Publisher
	var mqttStatus telemetry.ConnectionStatus
	if broker != "" {
		p, err := telemetry.NewRealPublisher(broker)
		if err != nil {
			// Telemetry is advisory; the car still races without it.
			log.Printf("telemetry unavailable: %v", err)
		} else {
			publisher = p
			mqttStatus = p
			defer p.Close()
		}
	}

	if publisher != nil {
		snap := tracker.Snapshot()
		startup := telemetry.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		}
	}

	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	log.Printf("started: poll=%v baseline=%d threshold=%d broker=%s",
		opts.poll, machine.Baseline(), machine.Threshold(), broker)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(panel, adcReader, drive, publisher, mqttStatus, tracker, machine, opts.heartbeat, time.Now, ticker.C, sigCh)
}

type initConfig struct {
	calSamples    int
	calDelay      time.Duration
	stirSpeed     int
	flashCount    int
	flashInterval time.Duration
}

// initialize runs the blocking setup sequence and returns the machine
// armed with the calibration baseline. All delays go through sleep so
// tests can run it instantly.
func initialize(adcReader adc.Reader, panel gpio.Panel, drive actuate.Drive, tracker *status.Tracker, cfg initConfig, sleep func(time.Duration)) (*logic.Machine, error) {
	// One-shot rail checks. Advisory: the results drive the indicators
	// and the status page, never run permission.
	rawBattery, err := adcReader.Read(adc.ChannelBattery)
	if err != nil {
		return nil, fmt.Errorf("read battery rail: %w", err)
	}
	rawFuelCell, err := adcReader.Read(adc.ChannelFuelCell)
	if err != nil {
		return nil, fmt.Errorf("read fuel-cell rail: %w", err)
	}

	batteryVolts := logic.RailVoltage(rawBattery)
	fuelCellVolts := logic.RailVoltage(rawFuelCell)
	batteryOK := logic.CheckRail(rawBattery, logic.BatteryMinVolts)
	fuelCellOK := logic.CheckRail(rawFuelCell, logic.FuelCellMinVolts)

	diag.Logf(diag.Voltage, "battery=%.2fV fuel-cell=%.2fV", batteryVolts, fuelCellVolts)
	if !batteryOK {
		log.Printf("battery low: %.2fV (minimum %.1fV)", batteryVolts, logic.BatteryMinVolts)
	}
	if !fuelCellOK {
		log.Printf("fuel cell low: %.2fV (minimum %.1fV)", fuelCellVolts, logic.FuelCellMinVolts)
	}

	if err := panel.SetBatteryOK(batteryOK); err != nil {
		return nil, fmt.Errorf("set battery indicator: %w", err)
	}
	if err := panel.SetFuelCellOK(fuelCellOK); err != nil {
		return nil, fmt.Errorf("set fuel-cell indicator: %w", err)
	}
	if tracker != nil {
		tracker.SetHealth(status.Health{
			BatteryOK:     batteryOK,
			FuelCellOK:    fuelCellOK,
			BatteryVolts:  batteryVolts,
			FuelCellVolts: fuelCellVolts,
		})
	}

	if err := flashIndicators(panel, batteryOK, fuelCellOK, cfg.flashCount, cfg.flashInterval, sleep); err != nil {
		return nil, err
	}

	// Sensor on before calibration so the baseline sees the lit cell.
	if err := panel.SetSensorPower(true); err != nil {
		return nil, fmt.Errorf("enable sensor power: %w", err)
	}

	baseline, err := logic.Calibrate(cfg.calSamples,
		func() (int, error) { return adcReader.Read(adc.ChannelLight) },
		func() { sleep(cfg.calDelay) },
	)
	if err != nil {
		return nil, err
	}

	machine := logic.NewMachine(baseline)
	log.Printf("calibrated: baseline=%d threshold=%d (%d samples)", baseline, machine.Threshold(), cfg.calSamples)
	if tracker != nil {
		tracker.SetBaseline(baseline, machine.Threshold())
	}

	// Stir runs for the whole session; a dead stirrer is not fatal.
	if err := drive.StartStir(cfg.stirSpeed); err != nil {
		log.Printf("start stir error: %v", err)
	}

	return machine, nil
}

// flashIndicators blinks both health indicators, ending on the values the
// rail checks produced.
func flashIndicators(panel gpio.Panel, batteryOK, fuelCellOK bool, count int, interval time.Duration, sleep func(time.Duration)) error {
	for i := 0; i < count; i++ {
		if err := panel.SetBatteryOK(false); err != nil {
			return fmt.Errorf("flash indicators: %w", err)
		}
		if err := panel.SetFuelCellOK(false); err != nil {
			return fmt.Errorf("flash indicators: %w", err)
		}
		sleep(interval)
		if err := panel.SetBatteryOK(batteryOK); err != nil {
			return fmt.Errorf("flash indicators: %w", err)
		}
		if err := panel.SetFuelCellOK(fuelCellOK); err != nil {
			return fmt.Errorf("flash indicators: %w", err)
		}
		sleep(interval)
	}
	return nil
}

func runLoop(panel gpio.Panel, adcReader adc.Reader, drive actuate.Drive, publisher telemetry.Publisher, mqttStatus telemetry.ConnectionStatus, tracker *status.Tracker, machine *logic.Machine, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if err := drive.Disengage(); err != nil {
				log.Printf("disengage on shutdown: %v", err)
			}
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := telemetry.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if publisher != nil {
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				}
			}
			return nil

		case <-tick:
			t := now()
			switchOn, err := panel.ReadSwitch()
			if err != nil {
				log.Printf("switch read error: %v", err)
				continue
			}
			light, err := adcReader.Read(adc.ChannelLight)
			if err != nil {
				log.Printf("light read error: %v", err)
				continue
			}

			res := machine.Step(logic.Input{Switch: switchOn, Light: light, Time: t})

			for _, cmd := range res.Commands {
				switch cmd {
				case logic.CommandEngage:
					if err := drive.Engage(); err != nil {
						log.Printf("engage error: %v", err)
					}
				case logic.CommandDisengage:
					if err := drive.Disengage(); err != nil {
						log.Printf("disengage error: %v", err)
					}
				}
			}

			for _, e := range res.Events {
				switch e.Type {
				case logic.EventRunStart:
					log.Printf("run started (light=%d)", e.Light)
				case logic.EventRunAbort:
					log.Printf("run aborted (light=%d)", e.Light)
				case logic.EventEndpointStop:
					log.Printf("endpoint reached, vehicle stopped (light=%d)", e.Light)
					diag.Logf(diag.Timing, "run duration %.1fs", e.Elapsed.Seconds())
				}
				if publisher != nil {
					if err := publisher.PublishRun(e); err != nil {
						log.Printf("publish error: %v", err)
						// Don't crash on publish failure
					}
				}
			}

			diag.Logf(diag.Light, "level=%d", light)

			if tracker != nil {
				tracker.Update(machine.State(), light, machine.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if publisher != nil && heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				hb := telemetry.SystemEvent{Timestamp: t, Event: "HEARTBEAT"}
				if tracker != nil {
					hb.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hb); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}
