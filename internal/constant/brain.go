package constant

const BrainBaseUrl = "https://api.worldquantbrain.com"

const AuthUri = "/authentication"
const SimulationsUri = "/simulations"
const ParseUri = SimulationsUri + "/parse"
const DataFieldsUri = "/data-fields"
const OperatorsUri = "/operators"
const AlphasUri = "/alphas"
