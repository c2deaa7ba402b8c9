package dumblang

// Version is the dumblang toolchain version reported by the CLI.
const Version = "0.3.0"
