// Package audio synthesizes connection chirps and the motor hum with beep.
package audio
