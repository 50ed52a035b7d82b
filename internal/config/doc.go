// Package config manages user-level settings stored at
// ~/.create-twilio-function/config.yaml. Settings can also be supplied through
// CREATE_TWILIO_FUNCTION_* environment variables, and cover the template
// repository, the .gitignore source, the pinned Node version, and the package
// manager used to install dependencies.
package config
