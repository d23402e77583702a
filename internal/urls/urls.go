package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://nevihome.github.io/neviweb/

// GettingStarted is the quick start guide for new users,
// covering account setup and the first run of the wizard.
const GettingStarted = "https://nevihome.github.io/neviweb/getting-started/overview/"

// AccountSetup explains how to create a Neviweb account and
// register gateways before running the setup wizard.
const AccountSetup = "https://nevihome.github.io/neviweb/getting-started/account/"

// PollingOptions documents the scan and stat interval options,
// including the trade-offs of aggressive polling.
const PollingOptions = "https://nevihome.github.io/neviweb/configuration/polling/"

// TroubleshootingGuide provides solutions to common issues
// encountered when signing in to the Neviweb service.
const TroubleshootingGuide = "https://nevihome.github.io/neviweb/troubleshooting/"

// MiWiDevices explains Sinopé MiWi device support and the
// ignore_miwi option for accounts with a GT125 gateway.
const MiWiDevices = "https://nevihome.github.io/neviweb/configuration/miwi/"
